// Copyright 2025 The cmdkit Authors.

package cmdkit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegisterCommand(t *testing.T) {
	root := New("app")
	child, err := root.register("copy, cp <src:string> [dst:string]", "copy a thing", false, CommandConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if child.Name() != "copy" {
		t.Errorf("name: got %q", child.Name())
	}
	if want := []string{"cp"}; !cmp.Equal(child.Aliases(), want) {
		t.Errorf("aliases: got %v", child.Aliases())
	}
	if len(child.args) != 2 || child.args[1].Name != "dst" || !child.args[1].Optional {
		t.Errorf("slots: got %v", child.args)
	}
	if child.parent != root {
		t.Error("parent link not set")
	}

	// duplicate primary name
	if _, err := root.register("copy", "", false, CommandConfig{}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("got %v, want ErrDuplicate", err)
	}
	// override replaces the prior child
	repl, err := root.register("copy", "new", false, CommandConfig{Override: true})
	if err != nil {
		t.Fatal(err)
	}
	if root.GetCommand("copy") != repl {
		t.Error("override did not replace the child")
	}
	if child.parent != nil {
		t.Error("replaced child should be detached")
	}
}

func TestSelectAndRemove(t *testing.T) {
	root := New("app")
	root.Command("sub", "")

	got, err := root.Select("sub")
	if err != nil || got.Name() != "sub" {
		t.Fatalf("Select: %v %v", got, err)
	}
	if _, err := root.Select("nope"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("got %v, want ErrUnknownCommand", err)
	}

	if err := root.RemoveCommand("sub"); err != nil {
		t.Fatal(err)
	}
	if root.GetCommand("sub") != nil {
		t.Error("child should be gone")
	}
	if err := root.RemoveCommand("sub"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("double remove: got %v, want ErrUnknownCommand", err)
	}
}

func TestMount(t *testing.T) {
	sub := newNode("")
	sub.Handle(func(context.Context, *Result) error { return nil })

	root := New("app")
	mounted := root.Mount("tool, t <arg:string>", sub)
	if mounted != sub {
		t.Fatal("Mount should return the mounted child")
	}
	if sub.Name() != "tool" || sub.parent != root {
		t.Errorf("mounted as %q, parent %v", sub.Name(), sub.parent)
	}
	// mounted subtrees resolve global types from their new ancestors
	if _, err := sub.resolveType("boolean"); err != nil {
		t.Errorf("builtin not visible from mounted node: %v", err)
	}
}

func TestVersionInheritance(t *testing.T) {
	root := New("app").Version("1.2.0")
	mid := root.Command("mid", "").Describe("middle")
	leaf := mid.Command("leaf", "")

	if got := leaf.resolveVersion(); got != "1.2.0" {
		t.Errorf("version: got %q, want 1.2.0", got)
	}
	mid.Version("2.0.0")
	if got := leaf.resolveVersion(); got != "2.0.0" {
		t.Errorf("version: got %q, want 2.0.0", got)
	}
	// description does not fall back
	if got := leaf.Description(); got != "" {
		t.Errorf("description: got %q, want empty", got)
	}
}

func TestPathString(t *testing.T) {
	root := New("app")
	leaf := root.Command("remote", "").Command("add", "")
	if got := leaf.PathString(); got != "app remote add" {
		t.Errorf("got %q", got)
	}
	if got := leaf.execName(); got != "app-remote-add" {
		t.Errorf("got %q", got)
	}
}

func TestValidate(t *testing.T) {
	root := New("app")
	root.Command("copy, x", "")
	root.Command("move, x", "") // alias collides with copy's alias
	root.Command("bad <a:nope>", "")
	root.Command("svc", "").DefaultCommand("missing")

	err := root.Validate()
	if err == nil {
		t.Fatal("want validation errors")
	}
	msg := err.Error()
	for _, want := range []string{`"x"`, "unknown type", `"missing"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("missing %q in:\n%s", want, msg)
		}
	}

	if err := New("ok").Validate(); err != nil {
		t.Errorf("clean tree: %v", err)
	}
}

func TestAutoHelp(t *testing.T) {
	root := New("app").Version("0.3.1").AutoHelp()
	var handled bool
	root.Command("sub <a:string>", "").
		Handle(func(context.Context, *Result) error { handled = true; return nil })

	// --help is global, standalone and carries an action: it must reach the
	// sub-command, bypass the required slot and short-circuit the handler.
	if _, err := root.Parse(context.Background(), []string{"sub", "--help"}); err != nil {
		t.Fatal(err)
	}
	if handled {
		t.Error("help action must short-circuit the handler")
	}
	if _, err := root.Parse(context.Background(), []string{"sub", "-V"}); err != nil {
		t.Fatal(err)
	}
}

func TestUsageRendering(t *testing.T) {
	root := New("app").Describe("does things").AutoHelp()
	sub := root.Command("sub, s <file:string>", "sub things").
		Option("--limit <n:integer>", "max results").
		Option("--secret", "", OptionConfig{Hidden: true}).
		Env("APP_MODE <mode:string>", "run mode").
		Example("basic", "app sub file.txt")
	root.Command("ghost", "", CommandConfig{Hidden: true})

	var b strings.Builder
	defaultHelp{}.Show(&b, sub)
	out := b.String()
	for _, want := range []string{
		"app sub", "<file:string>", "--limit", "--help", "APP_MODE", "basic",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("usage missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "secret") {
		t.Errorf("hidden option rendered:\n%s", out)
	}

	b.Reset()
	defaultHelp{}.Show(&b, root)
	if strings.Contains(b.String(), "ghost") {
		t.Errorf("hidden command rendered:\n%s", b.String())
	}
}

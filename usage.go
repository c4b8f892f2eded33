// Copyright 2025 The cmdkit Authors.

package cmdkit

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// HelpRenderer renders a command's usage text. The engine treats help as a
// collaborator: the error path and the auto-installed --help option call
// Show, and SetHelpRenderer swaps the implementation.
type HelpRenderer interface {
	Show(w io.Writer, c *Command)
}

// SetHelpRenderer replaces the tree's help renderer.
func (c *Command) SetHelpRenderer(h HelpRenderer) *Command {
	c.root().helper = h
	return c
}

type defaultHelp struct{}

func (defaultHelp) Show(w io.Writer, c *Command) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", c.usageHeader())
	if c.description != "" {
		fmt.Fprintf(w, "  %s\n", c.description)
	}
	if v := c.resolveVersion(); v != "" {
		fmt.Fprintf(w, "  version %s\n", v)
	}

	opts := c.visibleOptions()
	shown := opts[:0:0]
	for _, o := range opts {
		if !o.Hidden {
			shown = append(shown, o)
		}
	}
	if len(shown) > 0 {
		fmt.Fprintln(w, "\nOptions:")
		for _, o := range shown {
			fmt.Fprintf(w, "  %-24s %s\n", o.usageLine(), o.Description)
		}
	}

	var subs []*Command
	for _, name := range c.childOrder {
		if child := c.children[name]; !child.hidden {
			subs = append(subs, child)
		}
	}
	if len(subs) > 0 {
		fmt.Fprintln(w, "\nCommands:")
		for _, s := range subs {
			name := s.name
			if len(s.aliases) > 0 {
				name += ", " + strings.Join(s.aliases, ", ")
			}
			fmt.Fprintf(w, "  %-24s %s\n", name, s.description)
		}
	}

	if len(c.envs) > 0 {
		fmt.Fprintln(w, "\nEnvironment:")
		for _, ev := range c.envs {
			fmt.Fprintf(w, "  %-24s %s\n", strings.Join(ev.Names, ", "), ev.Description)
		}
	}

	if len(c.examples) > 0 {
		fmt.Fprintln(w, "\nExamples:")
		for _, ex := range c.examples {
			fmt.Fprintf(w, "  %-24s %s\n", ex.Name, ex.Description)
		}
	}
}

func (c *Command) usageHeader() string {
	var b strings.Builder
	b.WriteString(c.PathString())
	if len(c.options) > 0 || c.inheritedAny() {
		b.WriteString(" [options]")
	}
	for _, a := range c.args {
		b.WriteString(" ")
		b.WriteString(a.String())
	}
	if len(c.children) > 0 {
		b.WriteString(" <command>")
	}
	return b.String()
}

func (c *Command) inheritedAny() bool {
	for a := c.parent; a != nil; a = a.parent {
		for _, o := range a.options {
			if o.Global {
				return true
			}
		}
	}
	return false
}

func (o *Option) usageLine() string {
	var parts []string
	for _, n := range o.Aliases {
		if len(n) == 1 {
			parts = append(parts, "-"+n)
		}
	}
	parts = append(parts, "--"+o.Name)
	for _, n := range o.Aliases {
		if len(n) > 1 {
			parts = append(parts, "--"+n)
		}
	}
	s := strings.Join(parts, ", ")
	if o.takesValue() {
		for _, a := range o.Args {
			s += " " + a.String()
		}
	}
	return s
}

// AutoHelp installs global, standalone --help/-h and --version/-V options
// whose actions render usage and the (inherited) version. Both short-circuit
// the command's own handler and bypass required-argument validation.
func (c *Command) AutoHelp() *Command {
	c.Option("--help, -h", "show help", OptionConfig{
		Standalone: true,
		Global:     true,
		Action: func(_ context.Context, r *Result) error {
			r.Command.root().helper.Show(os.Stdout, r.Command)
			return nil
		},
	})
	c.Option("--version, -V", "print version", OptionConfig{
		Standalone: true,
		Global:     true,
		Action: func(_ context.Context, r *Result) error {
			fmt.Fprintln(os.Stdout, r.Command.resolveVersion())
			return nil
		},
	})
	return c
}

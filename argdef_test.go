// Copyright 2025 The cmdkit Authors.

package cmdkit

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseArgSpec(t *testing.T) {
	for _, test := range []struct {
		def  string
		want []*Arg
	}{
		{"", nil},
		{
			"<file>",
			[]*Arg{{Name: "file", Type: "string"}},
		},
		{
			"<src:string> <dst:string>",
			[]*Arg{{Name: "src", Type: "string"}, {Name: "dst", Type: "string"}},
		},
		{
			"<port:number> [mode]",
			[]*Arg{{Name: "port", Type: "number"}, {Name: "mode", Type: "string", Optional: true}},
		},
		{
			"<tags:string[]>",
			[]*Arg{{Name: "tags", Type: "string", List: true}},
		},
		{
			"<...files:string>",
			[]*Arg{{Name: "files", Type: "string", Variadic: true}},
		},
		{
			"[rest...]",
			[]*Arg{{Name: "rest", Type: "string", Optional: true, Variadic: true}},
		},
		{
			// empty names are dropped, not rejected
			"<> <a>",
			[]*Arg{{Name: "a", Type: "string"}},
		},
	} {
		got, err := parseArgSpec(test.def)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.def, err)
			continue
		}
		if !cmp.Equal(got, test.want) {
			t.Errorf("%q:\ngot  %v\nwant %v", test.def, got, test.want)
		}
	}
}

func TestParseArgSpecErrors(t *testing.T) {
	for _, def := range []string{
		"[a] <b>",       // required after optional
		"<...a> <b>",    // variadic not last
		"<...a> <...b>", // two variadic slots
		"plain",         // unbracketed token
		"<a",            // unterminated
	} {
		_, err := parseArgSpec(def)
		if !errors.Is(err, ErrGrammar) {
			t.Errorf("%q: got %v, want ErrGrammar", def, err)
		}
	}
}

func TestParseEnvArgSpec(t *testing.T) {
	got, err := parseEnvArgSpec("<port:number>")
	if err != nil {
		t.Fatal(err)
	}
	if want := (&Arg{Name: "port", Type: "number"}); !cmp.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	for _, def := range []string{
		"",                  // no slot
		"[port:number]",     // optional
		"<...ports:number>", // variadic
		"<a> <b>",           // multi-value
	} {
		if _, err := parseEnvArgSpec(def); !errors.Is(err, ErrGrammar) {
			t.Errorf("%q: got %v, want ErrGrammar", def, err)
		}
	}
}

func TestSplitDeclaration(t *testing.T) {
	for _, test := range []struct {
		decl      string
		wantNames []string
		wantDef   string
	}{
		{"copy", []string{"copy"}, ""},
		{"copy, cp", []string{"copy", "cp"}, ""},
		{"copy, cp <src> <dst>", []string{"copy", "cp"}, "<src> <dst>"},
		{"--files, -f <f:string[]>", []string{"--files", "-f"}, "<f:string[]>"},
		{"--file=<path:string>", []string{"--file"}, "<path:string>"},
	} {
		names, def := splitDeclaration(test.decl)
		if !cmp.Equal(names, test.wantNames) || def != test.wantDef {
			t.Errorf("%q: got %v %q, want %v %q", test.decl, names, def, test.wantNames, test.wantDef)
		}
	}
}

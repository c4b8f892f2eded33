// Copyright 2025 The cmdkit Authors.

package cmdkit

import (
	"fmt"
	"strings"
)

// The argument-definition mini-grammar. A definition string is a sequence of
// whitespace-separated tokens, each declaring one positional slot:
//
//	<name>            required string
//	<name:type>       required, coerced through the type registry
//	[name:type]       optional
//	<name:type[]>     list-valued: the token is split on the separator
//	<...name:type>    variadic: consumes every remaining token
//
// The "..." marker may prefix or suffix the name.

// Arg is one declared argument slot.
type Arg struct {
	Name      string
	Type      string
	Optional  bool
	Variadic  bool
	List      bool
	Separator string // separator for list values, "," when empty
}

const defaultListSeparator = ","

func (a *Arg) separator() string {
	if a.Separator == "" {
		return defaultListSeparator
	}
	return a.Separator
}

// String renders the slot back in grammar form, for usage text.
func (a *Arg) String() string {
	name := a.Name
	if a.Variadic {
		name = "..." + name
	}
	typ := a.Type
	if a.List {
		typ += "[]"
	}
	s := name + ":" + typ
	if a.Optional {
		return "[" + s + "]"
	}
	return "<" + s + ">"
}

// parseArgSpec parses a definition string into slots in declaration order.
// It rejects a required slot after an optional one, more than one variadic
// slot, and a variadic slot in any position but the last. Tokens with an
// empty name are dropped.
func parseArgSpec(def string) ([]*Arg, error) {
	var (
		slots        []*Arg
		seenOpt      bool
		seenVariadic bool
	)
	for _, tok := range strings.Fields(def) {
		arg, err := parseArgToken(tok)
		if err != nil {
			return nil, err
		}
		if arg == nil { // empty name
			continue
		}
		if seenVariadic {
			return nil, fmt.Errorf("%w: variadic slot must be last, got %q after it", ErrGrammar, tok)
		}
		if !arg.Optional && seenOpt {
			return nil, fmt.Errorf("%w: required slot %q after an optional slot", ErrGrammar, tok)
		}
		if arg.Optional {
			seenOpt = true
		}
		if arg.Variadic {
			seenVariadic = true
		}
		slots = append(slots, arg)
	}
	return slots, nil
}

// parseEnvArgSpec parses the slot of an environment-variable binding, which
// must be exactly one required, non-variadic slot.
func parseEnvArgSpec(def string) (*Arg, error) {
	slots, err := parseArgSpec(def)
	if err != nil {
		return nil, err
	}
	switch {
	case len(slots) == 0:
		return nil, fmt.Errorf("%w: environment binding needs a value slot", ErrGrammar)
	case len(slots) > 1:
		return nil, fmt.Errorf("%w: environment binding takes a single value slot", ErrGrammar)
	case slots[0].Optional:
		return nil, fmt.Errorf("%w: environment binding slot cannot be optional", ErrGrammar)
	case slots[0].Variadic:
		return nil, fmt.Errorf("%w: environment binding slot cannot be variadic", ErrGrammar)
	}
	return slots[0], nil
}

func parseArgToken(tok string) (*Arg, error) {
	var optional bool
	switch {
	case strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">"):
	case strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]"):
		optional = true
	default:
		return nil, fmt.Errorf("%w: malformed token %q", ErrGrammar, tok)
	}
	inner := tok[1 : len(tok)-1]

	name, typ, ok := strings.Cut(inner, ":")
	if !ok || typ == "" {
		typ = "string"
	}
	arg := &Arg{Type: typ, Optional: optional}
	if strings.HasSuffix(arg.Type, "[]") {
		arg.Type = strings.TrimSuffix(arg.Type, "[]")
		arg.List = true
	}
	if strings.HasPrefix(name, "...") {
		name = strings.TrimPrefix(name, "...")
		arg.Variadic = true
	}
	if strings.HasSuffix(name, "...") {
		name = strings.TrimSuffix(name, "...")
		arg.Variadic = true
	}
	if name == "" {
		return nil, nil
	}
	arg.Name = name
	return arg, nil
}

// splitDeclaration splits a name/flags declaration string into its name
// tokens and a trailing argument-definition suffix. The suffix starts at the
// first '<' or '['; the head is split on commas, equals signs and spaces.
// Both command and option registration use these delimiter rules.
func splitDeclaration(s string) (names []string, argDef string) {
	head := s
	if i := strings.IndexAny(s, "<["); i >= 0 {
		head, argDef = s[:i], strings.TrimSpace(s[i:])
	}
	names = strings.FieldsFunc(head, func(r rune) bool {
		return r == ',' || r == '=' || r == ' ' || r == '\t'
	})
	return names, argDef
}

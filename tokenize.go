// Copyright 2025 The cmdkit Authors.

package cmdkit

import (
	"fmt"
	"strings"
)

// CoerceFunc converts a raw token through the type registry of the command
// being parsed. opt is nil for positional slots.
type CoerceFunc func(opt *Option, arg *Arg, token string) (interface{}, error)

// TokenizeResult is the outcome of flag tokenization: resolved flag values
// keyed by canonical option name, plus the leftover tokens that positional
// matching consumes.
type TokenizeResult struct {
	Flags map[string]interface{}
	Rest  []string
}

// Tokenizer separates flags from positional tokens. The engine supplies the
// options visible at the terminal command and a coercion callback; a custom
// implementation can be installed with SetTokenizer.
type Tokenizer interface {
	Tokenize(tokens []string, opts []*Option, allowEmpty bool, coerce CoerceFunc) (*TokenizeResult, error)
}

// SetTokenizer replaces the tree's flag tokenizer.
func (c *Command) SetTokenizer(t Tokenizer) *Command {
	c.root().tokenizer = t
	return c
}

// defaultTokenizer handles --long, --long=value, -s, the "--" terminator and
// option argument slots. Tokens shaped like flags that match no visible
// option are left in the rest list, where positional matching rejects them.
type defaultTokenizer struct{}

func (defaultTokenizer) Tokenize(tokens []string, opts []*Option, allowEmpty bool, coerce CoerceFunc) (*TokenizeResult, error) {
	res := &TokenizeResult{Flags: map[string]interface{}{}}
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		if tok == "--" {
			res.Rest = append(res.Rest, tokens[i+1:]...)
			break
		}
		if !isFlagToken(tok) {
			res.Rest = append(res.Rest, tok)
			i++
			continue
		}
		name, inline, hasInline := cutFlagToken(tok)
		opt := matchOption(opts, name)
		if opt == nil {
			res.Rest = append(res.Rest, tok)
			i++
			continue
		}
		if hasInline && inline == "" && !allowEmpty {
			return nil, fmt.Errorf("option --%s: empty value", opt.Name)
		}
		i++
		val, next, err := consumeOptionValue(opt, tokens, i, inline, hasInline, coerce)
		if err != nil {
			return nil, err
		}
		i = next
		res.Flags[opt.Name] = val
	}
	return res, nil
}

// consumeOptionValue fills the option's argument slots starting at tokens[i].
// It returns the option's value and the next unconsumed index.
func consumeOptionValue(opt *Option, tokens []string, i int, inline string, hasInline bool, coerce CoerceFunc) (interface{}, int, error) {
	var vals []interface{}
	for _, slot := range opt.Args {
		switch {
		case hasInline:
			v, err := coerce(opt, slot, inline)
			if err != nil {
				return nil, i, fmt.Errorf("option --%s: %w", opt.Name, err)
			}
			vals = append(vals, v)
			hasInline = false

		case slot.Variadic:
			var list []interface{}
			for i < len(tokens) && !isFlagToken(tokens[i]) && tokens[i] != "--" {
				v, err := coerce(opt, slot, tokens[i])
				if err != nil {
					return nil, i, fmt.Errorf("option --%s: %w", opt.Name, err)
				}
				list = append(list, v)
				i++
			}
			if len(list) == 0 && !slot.Optional {
				return nil, i, fmt.Errorf("option --%s: %s: %w", opt.Name, slot.Name, ErrMissingArgument)
			}
			vals = append(vals, list)

		case !slot.Optional:
			if i >= len(tokens) || isFlagToken(tokens[i]) || tokens[i] == "--" {
				return nil, i, fmt.Errorf("option --%s: %s: %w", opt.Name, slot.Name, ErrMissingArgument)
			}
			v, err := coerce(opt, slot, tokens[i])
			if err != nil {
				return nil, i, fmt.Errorf("option --%s: %w", opt.Name, err)
			}
			vals = append(vals, v)
			i++

		default: // optional slot
			if !consumable(slot, tokens, i) {
				if slot.Type == "boolean" && !slot.List {
					// Bare flag: coerces to true.
					vals = append(vals, true)
				}
				continue
			}
			v, err := coerce(opt, slot, tokens[i])
			if err != nil {
				return nil, i, fmt.Errorf("option --%s: %w", opt.Name, err)
			}
			vals = append(vals, v)
			i++
		}
	}
	switch len(vals) {
	case 0:
		return true, i, nil
	case 1:
		return vals[0], i, nil
	default:
		return vals, i, nil
	}
}

// consumable reports whether tokens[i] may fill an optional slot. Boolean
// slots only swallow tokens that lex as booleans, so a bare boolean flag
// never eats a following positional.
func consumable(slot *Arg, tokens []string, i int) bool {
	if i >= len(tokens) || isFlagToken(tokens[i]) || tokens[i] == "--" {
		return false
	}
	if slot.Type == "boolean" && !slot.List {
		return looksBoolean(tokens[i])
	}
	return true
}

func matchOption(opts []*Option, name string) *Option {
	for _, o := range opts {
		if o.match(name) {
			return o
		}
	}
	return nil
}

// isFlagToken reports whether tok looks like a flag. Negative numbers are
// values, not flags.
func isFlagToken(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' || tok == "--" {
		return false
	}
	c := tok[1]
	return !(c >= '0' && c <= '9') && c != '.'
}

// cutFlagToken splits "--name=value" into its parts and strips the dashes.
func cutFlagToken(tok string) (name, inline string, hasInline bool) {
	tok = strings.TrimLeft(tok, "-")
	name, inline, hasInline = strings.Cut(tok, "=")
	return name, inline, hasInline
}

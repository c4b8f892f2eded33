// Copyright 2025 The cmdkit Authors.

package cmdkit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// TypeHandler coerces one raw command-line token into a typed value. The
// option is nil when the token fills a positional slot. A handler that also
// implements complete.Predictor is registered as a completion provider for
// the same type name.
type TypeHandler interface {
	Parse(opt *Option, arg *Arg, token string) (interface{}, error)
}

// TypeHandlerFunc adapts a function to a TypeHandler.
type TypeHandlerFunc func(opt *Option, arg *Arg, token string) (interface{}, error)

func (f TypeHandlerFunc) Parse(opt *Option, arg *Arg, token string) (interface{}, error) {
	return f(opt, arg, token)
}

// TypeConfig controls type and completion registration.
type TypeConfig struct {
	// Override replaces an existing definition instead of failing.
	Override bool
	// Global makes the definition resolvable from every descendant node.
	Global bool
}

type typeEntry struct {
	name    string
	handler TypeHandler
	global  bool
}

type completeEntry struct {
	name      string
	predictor complete.Predictor
	global    bool
}

func (c *Command) registerType(name string, h TypeHandler, cfg TypeConfig) error {
	if _, ok := c.types[name]; ok && !cfg.Override {
		return fmt.Errorf("type %q: %w", name, ErrDuplicate)
	}
	c.types[name] = &typeEntry{name: name, handler: h, global: cfg.Global}
	if p, ok := h.(complete.Predictor); ok {
		// Completion piggybacks on the type definition with the same
		// visibility. Override is forced so re-registration stays in sync.
		return c.registerCompletion(name, p, TypeConfig{Override: true, Global: cfg.Global})
	}
	return nil
}

func (c *Command) registerCompletion(name string, p complete.Predictor, cfg TypeConfig) error {
	if _, ok := c.completions[name]; ok && !cfg.Override {
		return fmt.Errorf("completion %q: %w", name, ErrDuplicate)
	}
	c.completions[name] = &completeEntry{name: name, predictor: p, global: cfg.Global}
	return nil
}

// resolveType finds the handler for a type name as seen from c: c's own
// registry matches exactly regardless of the global flag; ancestors match
// only entries marked global. A non-global ancestor entry neither matches
// nor stops the walk.
func (c *Command) resolveType(name string) (TypeHandler, error) {
	if e, ok := c.types[name]; ok {
		return e.handler, nil
	}
	for a := c.parent; a != nil; a = a.parent {
		if e, ok := a.types[name]; ok && e.global {
			return e.handler, nil
		}
	}
	return nil, fmt.Errorf("type %q: %w", name, ErrUnknownType)
}

// resolveCompletion mirrors resolveType for completion providers. It returns
// nil when the name has no provider.
func (c *Command) resolveCompletion(name string) complete.Predictor {
	if e, ok := c.completions[name]; ok {
		return e.predictor
	}
	for a := c.parent; a != nil; a = a.parent {
		if e, ok := a.completions[name]; ok && e.global {
			return e.predictor
		}
	}
	return nil
}

// coerce resolves the slot's type and converts token through it. List slots
// are split on the slot separator and coerced element-wise.
func (c *Command) coerce(opt *Option, arg *Arg, token string) (interface{}, error) {
	h, err := c.resolveType(arg.Type)
	if err != nil {
		return nil, err
	}
	if !arg.List {
		return h.Parse(opt, arg, token)
	}
	parts := strings.Split(token, arg.separator())
	list := make([]interface{}, 0, len(parts))
	for _, p := range parts {
		v, err := h.Parse(opt, arg, strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		list = append(list, v)
	}
	return list, nil
}

// Builtin type handlers. Every root gets these as global definitions, so any
// node in the tree can use them and any node can shadow them locally.

type stringType struct{}

func (stringType) Parse(_ *Option, _ *Arg, token string) (interface{}, error) {
	return token, nil
}

type boolType struct{}

func (boolType) Parse(_ *Option, _ *Arg, token string) (interface{}, error) {
	return strconv.ParseBool(token)
}

func (boolType) Predict(prefix string) []string {
	return predict.Set{"true", "false"}.Predict(prefix)
}

type numberType struct{}

func (numberType) Parse(_ *Option, _ *Arg, token string) (interface{}, error) {
	return strconv.ParseFloat(token, 64)
}

type integerType struct{}

func (integerType) Parse(_ *Option, _ *Arg, token string) (interface{}, error) {
	i, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return nil, err
	}
	return i, nil
}

type floatType struct{}

func (floatType) Parse(_ *Option, _ *Arg, token string) (interface{}, error) {
	return strconv.ParseFloat(token, 64)
}

type durationType struct{}

func (durationType) Parse(_ *Option, _ *Arg, token string) (interface{}, error) {
	return time.ParseDuration(token)
}

func registerBuiltins(c *Command) {
	cfg := TypeConfig{Global: true}
	c.registerType("string", stringType{}, cfg)
	c.registerType("boolean", boolType{}, cfg)
	c.registerType("number", numberType{}, cfg)
	c.registerType("integer", integerType{}, cfg)
	c.registerType("float", floatType{}, cfg)
	c.registerType("duration", durationType{}, cfg)
}

// looksBoolean reports whether token lexes as a boolean literal. The default
// option value slot uses it to decide whether to consume the next token.
func looksBoolean(token string) bool {
	_, err := strconv.ParseBool(token)
	return err == nil
}

// Copyright 2025 The cmdkit Authors.

package cmdkit

import (
	"fmt"
	"os"
	"sync"
)

// EnvVar binds one or more environment variable names to a typed value slot.
// The slot must be required and non-variadic; the first variable found in
// the environment wins.
type EnvVar struct {
	Names       []string
	Description string
	Arg         *Arg
}

// Example is a named usage example rendered in help text.
type Example struct {
	Name        string
	Description string
}

// Hooks for the process environment. lookupEnv is swapped in tests;
// envPermission models the one-shot permission probe performed at process
// start and exists for embedders that gate environment access.
var (
	lookupEnv     = os.LookupEnv
	envPermission = func() bool { return true }

	envOnce      sync.Once
	envPermitted bool
)

func envAllowed() bool {
	envOnce.Do(func() { envPermitted = envPermission() })
	return envPermitted
}

func (c *Command) registerEnv(decl, description string) (*EnvVar, error) {
	names, argDef := splitDeclaration(decl)
	if len(names) == 0 {
		return nil, fmt.Errorf("env %q: %w: no variable names", decl, ErrGrammar)
	}
	arg, err := parseEnvArgSpec(argDef)
	if err != nil {
		return nil, fmt.Errorf("env %q: %w", decl, err)
	}
	for _, n := range names {
		for _, ev := range c.envs {
			for _, existing := range ev.Names {
				if existing == n {
					return nil, fmt.Errorf("env %q: %w", n, ErrDuplicate)
				}
			}
		}
	}
	ev := &EnvVar{Names: names, Description: description, Arg: arg}
	c.envs = append(c.envs, ev)
	return ev, nil
}

// processEnv reads and coerces the node's environment bindings. A coercion
// failure is fatal and surfaces immediately. Values are keyed by the
// binding's slot name.
func (c *Command) processEnv() (map[string]interface{}, error) {
	if len(c.envs) == 0 || !envAllowed() {
		return nil, nil
	}
	vals := make(map[string]interface{})
	for _, ev := range c.envs {
		for _, name := range ev.Names {
			raw, ok := lookupEnv(name)
			if !ok {
				continue
			}
			v, err := c.coerce(nil, ev.Arg, raw)
			if err != nil {
				return nil, fmt.Errorf("%s=%q: %w: %v", name, raw, ErrEnvCoercion, err)
			}
			vals[ev.Arg.Name] = v
			break
		}
	}
	return vals, nil
}

func (c *Command) registerExample(name, description string) error {
	for _, ex := range c.examples {
		if ex.Name == name {
			return fmt.Errorf("example %q: %w", name, ErrDuplicate)
		}
	}
	c.examples = append(c.examples, Example{Name: name, Description: description})
	return nil
}

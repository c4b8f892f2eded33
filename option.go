// Copyright 2025 The cmdkit Authors.

package cmdkit

import (
	"fmt"
	"strings"
)

// Option is one declared flag. The canonical name comes from the first long
// flag in the declaration; every other flag token becomes an alias.
type Option struct {
	Name        string
	Aliases     []string
	Description string
	Args        []*Arg
	Flags       string // the declaration string as written
	Standalone  bool
	Global      bool
	Hidden      bool
	Action      HandlerFunc
	Separator   string
}

// OptionConfig carries the behavioral attributes of an option declaration.
type OptionConfig struct {
	// Standalone options bypass required-argument validation when present,
	// e.g. --help on a command that otherwise demands arguments.
	Standalone bool
	// Global options are visible to every descendant of the declaring node.
	Global bool
	// Hidden options are omitted from usage text and completion.
	Hidden bool
	// Override replaces an existing option with a colliding name or alias.
	Override bool
	// Separator splits list-typed value slots; it is copied onto every list
	// slot of the option's argument definition.
	Separator string
	// Action, when set, runs instead of the command handler whenever the
	// option is present on the command line.
	Action HandlerFunc
}

// names returns the canonical name followed by the aliases.
func (o *Option) names() []string {
	return append([]string{o.Name}, o.Aliases...)
}

func (o *Option) match(name string) bool {
	if o.Name == name {
		return true
	}
	for _, a := range o.Aliases {
		if a == name {
			return true
		}
	}
	return false
}

// takesValue reports whether the option declares anything beyond the default
// boolean slot.
func (o *Option) takesValue() bool {
	return len(o.Args) != 1 || o.Args[0].Type != "boolean" || !o.Args[0].Optional
}

func (c *Command) registerOption(flags, description string, cfg OptionConfig) (*Option, error) {
	names, argDef := splitDeclaration(flags)
	if len(names) == 0 {
		return nil, fmt.Errorf("option %q: %w: no flag names", flags, ErrGrammar)
	}
	var args []*Arg
	if argDef == "" {
		// A bare flag coerces to boolean true.
		args = []*Arg{{Name: "value", Type: "boolean", Optional: true}}
	} else {
		var err error
		args, err = parseArgSpec(argDef)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", flags, err)
		}
	}

	opt := &Option{
		Description: description,
		Args:        args,
		Flags:       flags,
		Standalone:  cfg.Standalone,
		Global:      cfg.Global,
		Hidden:      cfg.Hidden,
		Action:      cfg.Action,
		Separator:   cfg.Separator,
	}
	if cfg.Separator != "" {
		for _, a := range args {
			if a.List {
				a.Separator = cfg.Separator
			}
		}
	}

	// The first long flag names the option; everything else is an alias.
	for _, n := range names {
		stripped := strings.TrimLeft(n, "-")
		if stripped == "" {
			return nil, fmt.Errorf("option %q: %w: empty flag name", flags, ErrGrammar)
		}
		if opt.Name == "" && strings.HasPrefix(n, "--") {
			opt.Name = stripped
			continue
		}
		opt.Aliases = append(opt.Aliases, stripped)
	}
	if opt.Name == "" {
		opt.Name, opt.Aliases = opt.Aliases[0], opt.Aliases[1:]
	}

	for _, n := range opt.names() {
		if prior := c.ownOption(n); prior != nil {
			if !cfg.Override {
				return nil, fmt.Errorf("option %q: %w", n, ErrDuplicate)
			}
			c.removeOption(prior)
		} else if !cfg.Override && c.inheritedOption(n) != nil {
			return nil, fmt.Errorf("option %q: %w: shadows inherited global option", n, ErrDuplicate)
		}
	}

	c.options[opt.Name] = opt
	c.optionOrder = append(c.optionOrder, opt.Name)
	return opt, nil
}

// ownOption finds an option declared on c itself by name or alias.
func (c *Command) ownOption(name string) *Option {
	for _, o := range c.options {
		if o.match(name) {
			return o
		}
	}
	return nil
}

// inheritedOption walks the ancestors for a global option matching name. A
// node's own option shadows an inherited one of the same name.
func (c *Command) inheritedOption(name string) *Option {
	for a := c.parent; a != nil; a = a.parent {
		for _, o := range a.options {
			if o.Global && o.match(name) && c.ownOption(o.Name) == nil {
				return o
			}
		}
	}
	return nil
}

// lookupOption resolves name against the options visible at c.
func (c *Command) lookupOption(name string) *Option {
	if o := c.ownOption(name); o != nil {
		return o
	}
	return c.inheritedOption(name)
}

// visibleOptions returns c's own options in declaration order followed by
// inherited globals, nearest ancestor first, skipping shadowed names.
func (c *Command) visibleOptions() []*Option {
	var out []*Option
	seen := map[string]bool{}
	for _, name := range c.optionOrder {
		out = append(out, c.options[name])
		seen[name] = true
	}
	for a := c.parent; a != nil; a = a.parent {
		for _, name := range a.optionOrder {
			o := a.options[name]
			if o.Global && !seen[o.Name] {
				out = append(out, o)
				seen[o.Name] = true
			}
		}
	}
	return out
}

func (c *Command) removeOption(o *Option) {
	delete(c.options, o.Name)
	for i, n := range c.optionOrder {
		if n == o.Name {
			c.optionOrder = append(c.optionOrder[:i], c.optionOrder[i+1:]...)
			break
		}
	}
}

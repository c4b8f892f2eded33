// Copyright 2025 The cmdkit Authors.

package cmdkit

// Methods for github.com/posener/complete/v2.Completer. Main wires the root
// into complete.Complete, so a program built on this package answers
// COMP_LINE completion requests before any parsing happens. Install
// completion for a binary by running it with COMP_INSTALL=1.

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// SubCmdList returns the visible sub-command names in registration order.
func (c *Command) SubCmdList() []string {
	var names []string
	for _, name := range c.childOrder {
		if !c.children[name].hidden {
			names = append(names, name)
		}
	}
	return names
}

// SubCmdGet returns the named sub-command, hidden ones included, so a typed
// hidden command still completes its own flags.
func (c *Command) SubCmdGet(name string) complete.Completer {
	child := c.findChild(name, true)
	if child == nil {
		return nil
	}
	return child
}

// FlagList returns the names of the options visible at this command,
// omitting hidden ones.
func (c *Command) FlagList() []string {
	var names []string
	for _, o := range c.visibleOptions() {
		if !o.Hidden {
			names = append(names, o.Name)
		}
	}
	return names
}

// FlagGet returns the value predictor for a flag: the completion provider
// registered for its first slot's type, or nothing for a bare boolean flag.
func (c *Command) FlagGet(flag string) complete.Predictor {
	opt := c.lookupOption(flag)
	if opt == nil || len(opt.Args) == 0 {
		return predict.Nothing
	}
	if !opt.takesValue() {
		return predict.Nothing
	}
	if p := c.resolveCompletion(opt.Args[0].Type); p != nil {
		return p
	}
	return predict.Something
}

// ArgsGet returns the predictor for positional arguments, from the first
// slot's type.
func (c *Command) ArgsGet() complete.Predictor {
	if len(c.args) == 0 {
		return predict.Nothing
	}
	if p := c.resolveCompletion(c.args[0].Type); p != nil {
		return p
	}
	return predict.Something
}

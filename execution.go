// Copyright 2025 The cmdkit Authors.

package cmdkit

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/shlex"
	"github.com/posener/complete/v2"
)

// Result is the outcome of a successful parse: the terminal command, the
// resolved flag values by canonical option name, the coerced positional
// arguments in slot order, and any values read from bound environment
// variables.
type Result struct {
	Command *Command
	Flags   map[string]interface{}
	Args    []interface{}
	Env     map[string]interface{}
}

// Bool reports the flag as a boolean; absent or non-boolean flags are false.
func (r *Result) Bool(name string) bool {
	b, _ := r.Flags[name].(bool)
	return b
}

// String returns the flag as a string, or "" when absent.
func (r *Result) String(name string) string {
	s, _ := r.Flags[name].(string)
	return s
}

// Main parses os.Args, answering shell-completion requests first, and
// returns the process exit code: 0 on success, 1 whenever the uniform error
// path ran. The caller passes it to os.Exit.
func (c *Command) Main(ctx context.Context) int {
	complete.Complete(c.name, c)
	return c.mainWithArgs(ctx, os.Args[1:])
}

func (c *Command) mainWithArgs(ctx context.Context, args []string) int {
	if _, err := c.Parse(ctx, args); err != nil {
		c.fail(err)
		return 1
	}
	return 0
}

// fail is the uniform error path: show the failing command's help, write one
// diagnostic line, and (in Main) exit non-zero. With the debug environment
// variable set the full error chain is logged as well.
func (c *Command) fail(err error) {
	root := c.root()
	var uerr *UsageError
	if errors.As(err, &uerr) {
		root.helper.Show(os.Stderr, uerr.Cmd)
	}
	root.logger.Debug("parse failed", "command", c.PathString(), "err", err)
	fmt.Fprintf(os.Stderr, "%s: %v\n", c.name, shortMessage(err))
}

// shortMessage strips the usage wrapper so the diagnostic line stays short.
func shortMessage(err error) string {
	var uerr *UsageError
	if errors.As(err, &uerr) {
		return uerr.Err.Error()
	}
	return err.Error()
}

// Parse routes tokens through the command tree, parses flags and positional
// arguments at the terminal command, dispatches its handler and returns the
// result. Errors are wrapped in a *UsageError naming the failing command,
// unless that command or an ancestor opted into ThrowErrors.
func (c *Command) Parse(ctx context.Context, tokens []string) (*Result, error) {
	node, rest := c.route(tokens)
	c.root().logger.Debug("routed", "command", node.PathString(), "rest", rest)
	res, err := node.execute(ctx, rest)
	if err != nil && !node.throws() {
		var uerr *UsageError
		if !errors.As(err, &uerr) {
			err = &UsageError{Cmd: node, Err: err}
		}
	}
	return res, err
}

// ParseLine splits a quoted command line into tokens and parses it.
func (c *Command) ParseLine(ctx context.Context, line string) (*Result, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("split %q: %w", line, err)
	}
	return c.Parse(ctx, tokens)
}

// route descends the tree as long as the next token literally matches a
// visible child's primary name. Aliases and hidden children never match
// here.
func (c *Command) route(tokens []string) (*Command, []string) {
	if len(tokens) > 0 {
		if child := c.findChild(tokens[0], false); child != nil {
			return child.route(tokens[1:])
		}
	}
	return c, tokens
}

// execute runs the terminal command in one of its three modes.
func (c *Command) execute(ctx context.Context, tokens []string) (*Result, error) {
	if c.executable {
		if err := c.runExecutable(ctx, tokens); err != nil {
			return nil, err
		}
		return &Result{Command: c}, nil
	}
	if c.rawArgs {
		res := &Result{Command: c, Flags: map[string]interface{}{}}
		for _, t := range tokens {
			res.Args = append(res.Args, t)
		}
		return res, c.dispatch(ctx, res)
	}
	return c.structured(ctx, tokens)
}

func (c *Command) structured(ctx context.Context, tokens []string) (*Result, error) {
	tr, err := c.root().tokenizer.Tokenize(tokens, c.visibleOptions(), c.allowEmpty, c.coerce)
	if err != nil {
		return nil, err
	}
	c.root().logger.Debug("tokenized", "flags", tr.Flags, "rest", tr.Rest)

	// Environment bindings are validated before positional matching; a
	// coercion failure here is fatal.
	env, err := c.processEnv()
	if err != nil {
		return nil, err
	}

	standalone := false
	for name := range tr.Flags {
		if opt := c.lookupOption(name); opt != nil && opt.Standalone {
			standalone = true
			break
		}
	}

	args, err := c.matchPositionals(tr.Rest, standalone)
	if err != nil {
		return nil, err
	}

	res := &Result{Command: c, Flags: tr.Flags, Args: args, Env: env}
	return res, c.dispatch(ctx, res)
}

// matchPositionals fills the declared slots from the leftover tokens in
// declaration order. A standalone flag tolerates an empty leftover set with
// unmet required slots.
func (c *Command) matchPositionals(tokens []string, standalone bool) ([]interface{}, error) {
	if len(c.args) == 0 {
		if len(tokens) == 0 {
			return nil, nil
		}
		if len(c.children) > 0 {
			return nil, fmt.Errorf("%q: %w", tokens[0], ErrUnknownCommand)
		}
		return nil, fmt.Errorf("%q: %w", tokens[0], ErrNoArguments)
	}
	if standalone && len(tokens) == 0 {
		return nil, nil
	}

	var out []interface{}
	i := 0
	for _, slot := range c.args {
		if slot.Variadic {
			var list []interface{}
			for ; i < len(tokens); i++ {
				v, err := c.coerce(nil, slot, tokens[i])
				if err != nil {
					return nil, fmt.Errorf("%s: %w", slot.Name, err)
				}
				list = append(list, v)
			}
			if len(list) == 0 && !slot.Optional {
				return nil, fmt.Errorf("%s: %w", slot.Name, ErrMissingArgument)
			}
			out = append(out, list)
			continue
		}
		if i >= len(tokens) {
			if slot.Optional {
				continue
			}
			return nil, fmt.Errorf("%s: %w", slot.Name, ErrMissingArgument)
		}
		v, err := c.coerce(nil, slot, tokens[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", slot.Name, err)
		}
		out = append(out, v)
		i++
	}
	if i < len(tokens) {
		return nil, fmt.Errorf("%q: %w", tokens[i], ErrTooManyArguments)
	}
	return out, nil
}

// dispatch runs, in order of precedence: an option action (exclusively), the
// command's own handler, or the default sub-command's dispatch chain. With
// none of those the parsed result is simply returned to the Parse caller.
func (c *Command) dispatch(ctx context.Context, res *Result) error {
	for _, opt := range c.visibleOptions() {
		if opt.Action == nil {
			continue
		}
		if _, ok := res.Flags[opt.Name]; !ok {
			continue
		}
		if err := opt.Action(ctx, res); err != nil {
			return &HandlerError{Path: c.PathString(), Err: err}
		}
		return nil
	}
	if c.handler != nil {
		if err := c.handler(ctx, res); err != nil {
			return &HandlerError{Path: c.PathString(), Err: err}
		}
		return nil
	}
	if c.defaultSub != "" {
		child, ok := c.children[c.defaultSub]
		if !ok {
			return fmt.Errorf("default command %q: %w", c.defaultSub, ErrUnknownCommand)
		}
		sub := *res
		sub.Command = child
		return child.dispatch(ctx, &sub)
	}
	return nil
}

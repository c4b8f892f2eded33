// Copyright 2025 The cmdkit Authors.

package cmdkit

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/posener/complete/v2"
)

// HandlerFunc is the callback invoked with the parse result of a command or
// of an option action.
type HandlerFunc func(ctx context.Context, r *Result) error

// Command is one node of the command tree. It owns its children, options,
// types, completions, examples and environment bindings. Fluent
// configuration methods return the node they configure, so registration
// reads as a chain; they panic on declaration errors, the same way the flag
// package panics on duplicate flags. The error-returning forms back every
// panicking method.
//
// Declaration must finish before the first Parse call; the tree is not
// mutated afterwards except through the explicit Remove methods.
type Command struct {
	name        string
	aliases     []string
	version     string
	description string
	hidden      bool
	executable  bool
	rawArgs     bool
	allowEmpty  bool
	throwErrors bool
	defaultSub  string
	args        []*Arg
	argSource   string
	handler     HandlerFunc

	parent     *Command
	children   map[string]*Command
	childOrder []string

	options     map[string]*Option
	optionOrder []string
	types       map[string]*typeEntry
	completions map[string]*completeEntry
	examples    []Example
	envs        []*EnvVar

	// collaborators, consulted on the root only
	tokenizer Tokenizer
	execer    Execer
	helper    HelpRenderer
	logger    hclog.Logger
}

// debugEnv enables verbose parse diagnostics on the error path.
const debugEnv = "CMDKIT_DEBUG"

// New creates the root of a command tree. name is the program name used for
// diagnostics, external executable resolution and shell completion. The
// builtin types (string, boolean, number, integer, float, duration) are
// registered globally on the root.
func New(name string) *Command {
	c := newNode(name)
	c.tokenizer = defaultTokenizer{}
	c.execer = systemExecer{}
	c.helper = defaultHelp{}
	c.logger = newLogger()
	registerBuiltins(c)
	return c
}

func newNode(name string) *Command {
	return &Command{
		name:        name,
		children:    map[string]*Command{},
		options:     map[string]*Option{},
		types:       map[string]*typeEntry{},
		completions: map[string]*completeEntry{},
	}
}

func newLogger() hclog.Logger {
	if os.Getenv(debugEnv) == "" {
		return hclog.NewNullLogger()
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "cmdkit",
		Level:  hclog.Debug,
		Output: os.Stderr,
	})
}

func (c *Command) root() *Command {
	r := c
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Name returns the node's primary name.
func (c *Command) Name() string { return c.name }

// Aliases returns the node's alias names. Aliases appear in usage text but
// do not participate in routing.
func (c *Command) Aliases() []string { return c.aliases }

// Description returns the node's own description. Unlike the version it is
// not inherited.
func (c *Command) Description() string { return c.description }

// PathString returns the space-joined path from the root to c.
func (c *Command) PathString() string {
	if c.parent == nil {
		return c.name
	}
	return c.parent.PathString() + " " + c.name
}

// execName returns the hyphen-joined path used to locate an external
// program for an executable node.
func (c *Command) execName() string {
	return strings.ReplaceAll(c.PathString(), " ", "-")
}

// resolveVersion returns the node's version, or the nearest ancestor's when
// the node declares none.
func (c *Command) resolveVersion() string {
	for n := c; n != nil; n = n.parent {
		if n.version != "" {
			return n.version
		}
	}
	return ""
}

func (c *Command) throws() bool {
	for n := c; n != nil; n = n.parent {
		if n.throwErrors {
			return true
		}
	}
	return false
}

// Fluent setters.

// Describe sets the node's description.
func (c *Command) Describe(d string) *Command { c.description = d; return c }

// Version sets the node's version string. Descendants without their own
// version inherit it.
func (c *Command) Version(v string) *Command { c.version = v; return c }

// Hide removes the node from routing, usage text and completion. GetCommand
// still resolves it.
func (c *Command) Hide() *Command { c.hidden = true; return c }

// RawArgs makes the node pass its remaining tokens to the handler without
// any option or positional parsing.
func (c *Command) RawArgs() *Command { c.rawArgs = true; return c }

// AllowEmptyFlags permits explicitly empty option values (--flag=).
func (c *Command) AllowEmptyFlags() *Command { c.allowEmpty = true; return c }

// ThrowErrors makes Parse return raw errors from this subtree instead of
// wrapping them for the help-and-exit path.
func (c *Command) ThrowErrors() *Command { c.throwErrors = true; return c }

// DefaultCommand names the child to execute when the node itself has no
// handler.
func (c *Command) DefaultCommand(name string) *Command { c.defaultSub = name; return c }

// Handle sets the node's handler.
func (c *Command) Handle(fn HandlerFunc) *Command { c.handler = fn; return c }

// Arguments declares the node's positional argument slots from a definition
// string, replacing any slots declared at registration.
func (c *Command) Arguments(def string) *Command {
	slots, err := parseArgSpec(def)
	if err != nil {
		panic(fmt.Sprintf("cmdkit: %s: %v", c.PathString(), err))
	}
	c.args, c.argSource = slots, def
	return c
}

// CommandConfig controls sub-command registration.
type CommandConfig struct {
	// Override replaces an existing child with the same primary name.
	Override bool
	// Hidden registers the child hidden.
	Hidden bool
}

func one(cfgs []CommandConfig) CommandConfig {
	if len(cfgs) > 0 {
		return cfgs[0]
	}
	return CommandConfig{}
}

// Command registers a sub-command and returns it for further configuration.
// decl is the primary name, optional aliases and an optional trailing
// argument definition, e.g. "add, a <name:string> [tags:string[]]".
// It panics on a duplicate name or a grammar error.
func (c *Command) Command(decl, description string, cfgs ...CommandConfig) *Command {
	child, err := c.register(decl, description, false, one(cfgs))
	if err != nil {
		panic(fmt.Sprintf("cmdkit: %s: %v", c.PathString(), err))
	}
	return child
}

// Executable registers a sub-command that forwards its tokens to an external
// program named after the command path (path segments joined with hyphens).
func (c *Command) Executable(decl, description string, cfgs ...CommandConfig) *Command {
	child, err := c.register(decl, description, true, one(cfgs))
	if err != nil {
		panic(fmt.Sprintf("cmdkit: %s: %v", c.PathString(), err))
	}
	return child
}

// Mount attaches a separately built subtree as a child. The child keeps its
// own declarations; decl supplies its name, aliases and argument slots.
func (c *Command) Mount(decl string, child *Command, cfgs ...CommandConfig) *Command {
	if _, err := c.attach(decl, child, one(cfgs)); err != nil {
		panic(fmt.Sprintf("cmdkit: %s: %v", c.PathString(), err))
	}
	return child
}

func (c *Command) register(decl, description string, executable bool, cfg CommandConfig) (*Command, error) {
	child := newNode("")
	child.description = description
	child.executable = executable
	return c.attach(decl, child, cfg)
}

func (c *Command) attach(decl string, child *Command, cfg CommandConfig) (*Command, error) {
	names, argDef := splitDeclaration(decl)
	if len(names) == 0 {
		return nil, fmt.Errorf("command %q: %w: no name", decl, ErrGrammar)
	}
	if argDef != "" {
		slots, err := parseArgSpec(argDef)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", decl, err)
		}
		child.args, child.argSource = slots, argDef
	}
	primary := names[0]
	if prior, ok := c.children[primary]; ok {
		if !cfg.Override {
			return nil, fmt.Errorf("command %q: %w", primary, ErrDuplicate)
		}
		c.removeChild(prior)
	}
	child.name = primary
	child.aliases = append(child.aliases, names[1:]...)
	if cfg.Hidden {
		child.hidden = true
	}
	child.parent = c
	// Children are indexed by primary name only; aliases are recorded but
	// not routed.
	c.children[primary] = child
	c.childOrder = append(c.childOrder, primary)
	return child, nil
}

// Option declares a flag on the node; see OptionConfig for the behavioral
// attributes. It panics on a name collision or grammar error.
func (c *Command) Option(flags, description string, cfgs ...OptionConfig) *Command {
	var cfg OptionConfig
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	if _, err := c.registerOption(flags, description, cfg); err != nil {
		panic(fmt.Sprintf("cmdkit: %s: %v", c.PathString(), err))
	}
	return c
}

// Type registers a coercion handler under name. A handler that implements
// complete.Predictor also becomes the completion provider for name.
func (c *Command) Type(name string, h TypeHandler, cfgs ...TypeConfig) *Command {
	var cfg TypeConfig
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	if err := c.registerType(name, h, cfg); err != nil {
		panic(fmt.Sprintf("cmdkit: %s: %v", c.PathString(), err))
	}
	return c
}

// Complete registers a completion provider under name without a type
// handler.
func (c *Command) Complete(name string, p complete.Predictor, cfgs ...TypeConfig) *Command {
	var cfg TypeConfig
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	if err := c.registerCompletion(name, p, cfg); err != nil {
		panic(fmt.Sprintf("cmdkit: %s: %v", c.PathString(), err))
	}
	return c
}

// Env binds environment variables to a typed value read once per Parse,
// e.g. Env("PORT, HTTP_PORT <port:number>", "listen port").
func (c *Command) Env(decl, description string) *Command {
	if _, err := c.registerEnv(decl, description); err != nil {
		panic(fmt.Sprintf("cmdkit: %s: %v", c.PathString(), err))
	}
	return c
}

// Example records a named usage example for the help text.
func (c *Command) Example(name, description string) *Command {
	if err := c.registerExample(name, description); err != nil {
		panic(fmt.Sprintf("cmdkit: %s: %v", c.PathString(), err))
	}
	return c
}

// Select returns the child with the given primary name for further
// configuration.
func (c *Command) Select(name string) (*Command, error) {
	child, ok := c.children[name]
	if !ok {
		return nil, fmt.Errorf("command %q: %w", name, ErrUnknownCommand)
	}
	return child, nil
}

// GetCommand resolves a child by primary name, hidden ones included.
func (c *Command) GetCommand(name string) *Command {
	return c.findChild(name, true)
}

// findChild resolves name against the child map. Routing passes
// includeHidden=false, so hidden commands never match a raw token.
func (c *Command) findChild(name string, includeHidden bool) *Command {
	child, ok := c.children[name]
	if !ok || (child.hidden && !includeHidden) {
		return nil
	}
	return child
}

// RemoveCommand deletes the child with the given primary name.
func (c *Command) RemoveCommand(name string) error {
	child, ok := c.children[name]
	if !ok {
		return fmt.Errorf("command %q: %w", name, ErrUnknownCommand)
	}
	c.removeChild(child)
	return nil
}

func (c *Command) removeChild(child *Command) {
	delete(c.children, child.name)
	for i, n := range c.childOrder {
		if n == child.name {
			c.childOrder = append(c.childOrder[:i], c.childOrder[i+1:]...)
			break
		}
	}
	child.parent = nil
}

// RemoveOption deletes an option by canonical name or alias. Its aliases
// become unresolvable with it.
func (c *Command) RemoveOption(name string) error {
	o := c.ownOption(name)
	if o == nil {
		return fmt.Errorf("option %q: %w", name, ErrUnknownCommand)
	}
	c.removeOption(o)
	return nil
}

// RemoveType deletes a type definition and its piggybacked completion entry.
func (c *Command) RemoveType(name string) error {
	if _, ok := c.types[name]; !ok {
		return fmt.Errorf("type %q: %w", name, ErrUnknownType)
	}
	delete(c.types, name)
	delete(c.completions, name)
	return nil
}

// Validate re-checks the whole tree for declaration defects that only show
// up across nodes: sibling alias collisions, slot types that resolve
// nowhere, dangling default sub-commands and executable nodes carrying a
// handler. All defects are reported together.
func (c *Command) Validate() error {
	var errs *multierror.Error
	c.validateNode(&errs)
	return errs.ErrorOrNil()
}

func (c *Command) validateNode(errs **multierror.Error) {
	taken := map[string]string{}
	for _, name := range c.childOrder {
		child := c.children[name]
		for _, n := range append([]string{child.name}, child.aliases...) {
			if prior, ok := taken[n]; ok && prior != child.name {
				*errs = multierror.Append(*errs, fmt.Errorf(
					"%s: name %q of %q: %w with %q", c.PathString(), n, child.name, ErrDuplicate, prior))
			} else {
				taken[n] = child.name
			}
		}
	}
	for _, a := range c.args {
		if _, err := c.resolveType(a.Type); err != nil {
			*errs = multierror.Append(*errs, fmt.Errorf("%s: slot %q: %w", c.PathString(), a.Name, err))
		}
	}
	for _, name := range c.optionOrder {
		for _, a := range c.options[name].Args {
			if _, err := c.resolveType(a.Type); err != nil {
				*errs = multierror.Append(*errs, fmt.Errorf("%s: option --%s: %w", c.PathString(), name, err))
			}
		}
	}
	for _, ev := range c.envs {
		if _, err := c.resolveType(ev.Arg.Type); err != nil {
			*errs = multierror.Append(*errs, fmt.Errorf("%s: env %v: %w", c.PathString(), ev.Names, err))
		}
	}
	if c.defaultSub != "" {
		if _, ok := c.children[c.defaultSub]; !ok {
			*errs = multierror.Append(*errs, fmt.Errorf(
				"%s: default command %q: %w", c.PathString(), c.defaultSub, ErrUnknownCommand))
		}
	}
	if c.executable && c.handler != nil {
		*errs = multierror.Append(*errs, fmt.Errorf(
			"%s: executable command cannot have a handler", c.PathString()))
	}
	for _, name := range c.childOrder {
		c.children[name].validateNode(errs)
	}
}

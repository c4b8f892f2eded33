// Copyright 2025 The cmdkit Authors.

package cmdkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes of declaration and parsing. All
// errors produced by this package wrap one of these, so callers can classify
// with errors.Is.
var (
	// ErrDuplicate reports a command, option, type, completion, example or
	// environment-variable name that collides with an existing definition.
	ErrDuplicate = errors.New("duplicate definition")

	// ErrGrammar reports a malformed argument-definition string.
	ErrGrammar = errors.New("invalid argument definition")

	// ErrMissingArgument reports a required argument slot with no token left
	// to fill it.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrTooManyArguments reports leftover tokens after every declared slot
	// has been filled.
	ErrTooManyArguments = errors.New("too many arguments")

	// ErrUnknownCommand reports a token that names no child command.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNoArguments reports a positional token given to a command that
	// declares no argument slots and has no children.
	ErrNoArguments = errors.New("no arguments allowed")

	// ErrUnknownType reports a type name that resolves in neither the node's
	// own registry nor any global ancestor registry.
	ErrUnknownType = errors.New("unknown type")

	// ErrExecutableNotFound reports that neither probe for an external
	// sub-command located a program.
	ErrExecutableNotFound = errors.New("executable not found")

	// ErrEnvCoercion reports a bound environment variable whose value failed
	// type coercion.
	ErrEnvCoercion = errors.New("environment variable coercion failed")
)

// HandlerError wraps an error returned by a user-supplied handler, either a
// command handler or an option action, so it can be told apart from the
// engine's own failures.
type HandlerError struct {
	Path string // full command path, e.g. "tool remote add"
	Err  error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// UsageError marks an error that should be reported together with the usage
// text of the command it occurred on. Parse wraps every failure in a
// UsageError unless the command (or an ancestor) opted into ThrowErrors.
type UsageError struct {
	Cmd *Command
	Err error
}

func (u *UsageError) Error() string {
	return fmt.Sprintf("%s: %v", u.Cmd.PathString(), u.Err)
}

func (u *UsageError) Unwrap() error { return u.Err }

// Copyright 2025 The cmdkit Authors.

package cmdkit

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Execer locates and runs the external program behind an executable
// command. The default implementation uses the PATH and inherits the
// process's standard streams; tests and embedders can replace it with
// SetExecer.
type Execer interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, path string, args []string) error
}

// SetExecer replaces the tree's external-process collaborator.
func (c *Command) SetExecer(e Execer) *Command {
	c.root().execer = e
	return c
}

// execProbeSuffix is the fixed suffix tried when the plain program name does
// not resolve, for externals installed with a Windows-style extension on a
// mixed PATH.
const execProbeSuffix = ".exe"

type systemExecer struct{}

func (systemExecer) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (systemExecer) Run(ctx context.Context, path string, args []string) error {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// runExecutable forwards the remaining tokens, unparsed, to the external
// program named after the command path. The name is probed plain and with
// the fixed suffix before giving up.
func (c *Command) runExecutable(ctx context.Context, tokens []string) error {
	ex := c.root().execer
	name := c.execName()
	path, err := ex.LookPath(name)
	if err != nil {
		path, err = ex.LookPath(name + execProbeSuffix)
	}
	if err != nil {
		return fmt.Errorf("%q: %w", name, ErrExecutableNotFound)
	}
	c.root().logger.Debug("running external command", "path", path, "args", tokens)
	if err := ex.Run(ctx, path, tokens); err != nil {
		return &HandlerError{Path: c.PathString(), Err: err}
	}
	return nil
}

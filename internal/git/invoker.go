// Package git is the gateway to the external git executable: invocation
// bound to an explicit repository root, read-only projections over the
// tool's output, and the single translation layer that classifies its
// free-text messages into typed outcomes.
package git

import (
	"context"
	"strings"
	"time"

	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
	"gitwiz.dev/gitwiz/internal/execx"
)

// Runner issues git commands against one repository root. Flows depend on
// this interface so they can be driven with scripted results in tests.
type Runner interface {
	Run(ctx context.Context, args ...string) (execx.Result, error)
	RunTimeout(ctx context.Context, timeout time.Duration, args ...string) (execx.Result, error)
}

// Invoker binds the git executable to a repository root. It never
// interprets output; callers hand results to the Classify functions or
// the Gateway projections.
type Invoker struct {
	run  execx.Runner
	root string
}

// NewInvoker creates an Invoker for the repository rooted at root.
func NewInvoker(run execx.Runner, root string) *Invoker {
	return &Invoker{run: run, root: root}
}

// Run executes git with the default timeout.
func (i *Invoker) Run(ctx context.Context, args ...string) (execx.Result, error) {
	return i.RunTimeout(ctx, 0, args...)
}

// RunTimeout executes git with an explicit timeout. A zero timeout falls
// back to the executor default.
func (i *Invoker) RunTimeout(ctx context.Context, timeout time.Duration, args ...string) (execx.Result, error) {
	return i.run.Run(ctx, execx.Command{
		Name:    "git",
		Args:    args,
		Dir:     i.root,
		Timeout: timeout,
		// Outcome classification rests on git's message phrasing, so pin
		// the tool to its untranslated output.
		Env: []string{"LC_ALL=C"},
	})
}

// DetectRoot resolves the repository root containing dir. This is the one
// place the process working directory matters; everything downstream
// carries the returned root explicitly.
func DetectRoot(ctx context.Context, run execx.Runner, dir string) (string, error) {
	result, err := run.Run(ctx, execx.Command{
		Name: "git",
		Args: []string{"rev-parse", "--show-toplevel"},
		Dir:  dir,
		Env:  []string{"LC_ALL=C"},
	})
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", gitwizerrors.ErrNotARepository
	}
	return strings.TrimSpace(result.Stdout), nil
}

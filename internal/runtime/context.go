// Package runtime assembles the dependencies every command operates on.
// Commands receive one wired Context instead of building their own
// executors, gateways and prompters.
package runtime

import (
	"context"
	"fmt"
	"os"

	"gitwiz.dev/gitwiz/internal/ai"
	"gitwiz.dev/gitwiz/internal/config"
	"gitwiz.dev/gitwiz/internal/execx"
	"gitwiz.dev/gitwiz/internal/git"
	"gitwiz.dev/gitwiz/internal/hosting"
	"gitwiz.dev/gitwiz/internal/tui"
)

// Context provides access to the wired dependency graph for commands.
// Fields are interfaces where tests substitute fakes.
type Context struct {
	Splog    *tui.Splog
	Exec     execx.Runner
	Git      git.Runner
	Gateway  *git.Gateway
	History  git.Comparer
	Prompter tui.Prompter
	Config   *config.Store
	Host     hosting.Host
	AI       ai.Client // when set, used as-is; otherwise built from Config
	RepoRoot string
}

// NewContext wires the real dependency graph rooted at repoRoot.
func NewContext(repoRoot string) (*Context, error) {
	splog, err := tui.NewSplogWithConfig(tui.GetLogFilePath())
	if err != nil {
		// File logging is best-effort; console logging always works
		splog = tui.NewSplog()
	}

	store, err := config.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration: %w", err)
	}

	executor := execx.NewWithDebug(splog.Debug)
	invoker := git.NewInvoker(executor, repoRoot)

	return &Context{
		Splog:    splog,
		Exec:     executor,
		Git:      invoker,
		Gateway:  git.NewGateway(invoker),
		History:  git.NewHistory(repoRoot),
		Prompter: tui.NewTerminalPrompter(),
		Config:   store,
		Host:     hosting.NewGitHubHost(executor, repoRoot),
		RepoRoot: repoRoot,
	}, nil
}

// GetContext locates the enclosing repository from the working directory
// and wires a Context rooted there. Returns ErrNotARepository (wrapped)
// when the working directory is not inside a work tree.
func GetContext(ctx context.Context) (*Context, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	root, err := git.DetectRoot(ctx, execx.New(), dir)
	if err != nil {
		return nil, err
	}

	return NewContext(root)
}

// GetToolContext wires a Context rooted at the working directory without
// requiring a repository. Commands that manage the tool itself (config,
// doctor, upgrade) run anywhere.
func GetToolContext() (*Context, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	return NewContext(dir)
}

// AIClient builds a provider client from the stored configuration.
// Returns ErrNoProviderConfigured (wrapped) when none is set up.
func (c *Context) AIClient() (ai.Client, error) {
	if c.AI != nil {
		return c.AI, nil
	}

	settings, err := c.Config.Load()
	if err != nil {
		return nil, err
	}

	key, err := c.Config.APIKey(settings)
	if err != nil {
		return nil, err
	}

	provider, err := ai.NewProvider(settings, key)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

// Close releases resources held by the context, flushing the log file.
func (c *Context) Close() error {
	if c.Splog != nil {
		return c.Splog.Close()
	}
	return nil
}

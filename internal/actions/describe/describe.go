// Package describe implements the describe command: collect a compact
// snapshot of the repository state and have the configured provider
// summarize it in prose. The flow is strictly read-only.
package describe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
	"gitwiz.dev/gitwiz/internal/runtime"
)

// Action performs the describe operation.
func Action(ctx context.Context, rc *runtime.Context) error {
	splog := rc.Splog

	hasCommit, err := rc.Gateway.HasAnyCommit(ctx)
	if err != nil {
		return fmt.Errorf("failed to check repository history: %w", err)
	}
	if !hasCommit {
		splog.Error("This repository has no commits yet; there is nothing to describe.")
		return fmt.Errorf("repository has no commits")
	}

	client, err := rc.AIClient()
	if err != nil {
		if errors.Is(err, gitwizerrors.ErrNoProviderConfigured) {
			splog.Error("No AI provider is configured.")
			splog.Tip("Set one up with 'gitwiz config set'.")
		}
		return err
	}

	snapshot, err := buildSnapshot(ctx, rc)
	if err != nil {
		return err
	}

	description, err := client.GenerateDescription(ctx, snapshot)
	if err != nil {
		if !errors.Is(err, gitwizerrors.ErrOperationCancelled) {
			splog.Warn("Description generation failed: %v", err)
		}
		return err
	}

	splog.Page(description)
	return nil
}

// buildSnapshot assembles the repository state the provider summarizes:
// working tree status, recent history, and pending change sizes.
func buildSnapshot(ctx context.Context, rc *runtime.Context) (string, error) {
	sections := []struct {
		header string
		args   []string
	}{
		{"Working tree status:", []string{"status", "--short"}},
		{"Recent commits:", []string{"log", "--oneline", "-10"}},
		{"Pending changes:", []string{"diff", "--stat"}},
	}

	var b strings.Builder
	for _, section := range sections {
		result, err := rc.Git.Run(ctx, section.args...)
		if err != nil {
			return "", err
		}
		if result.ExitCode != 0 {
			return "", gitwizerrors.NewGitCommandError("git", section.args, result.Stdout, result.Stderr, nil)
		}

		content := strings.TrimSpace(result.Stdout)
		if content == "" {
			content = "(none)"
		}
		b.WriteString(section.header)
		b.WriteString("\n")
		b.WriteString(content)
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String()), nil
}

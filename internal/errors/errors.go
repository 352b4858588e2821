// Package errors provides sentinel errors and custom error types for the gitwiz application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common conditions
var (
	// ErrNotARepository indicates that the working directory is not inside a git repository
	ErrNotARepository = errors.New("not a git repository")

	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrNothingToMerge indicates that no merge candidates remain after filtering
	ErrNothingToMerge = errors.New("nothing to merge")

	// ErrNoProviderConfigured indicates that no AI provider has been configured
	ErrNoProviderConfigured = errors.New("no AI provider configured")

	// ErrOperationCancelled indicates that the operator cancelled the in-flight operation
	ErrOperationCancelled = errors.New("operation cancelled")
)

// BranchNotFoundError represents an error when a branch is not found
type BranchNotFoundError struct {
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %s does not exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName}
}

// StartError represents a failure to launch an external executable at all.
// Non-zero exit codes are not start errors; they are returned as data.
type StartError struct {
	Command string
	Err     error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Command, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// NewStartError creates a new StartError
func NewStartError(command string, err error) *StartError {
	return &StartError{Command: command, Err: err}
}

// TimeoutError represents an external command exceeding its deadline.
// Distinct from ErrOperationCancelled, which means the operator's own
// cancellation signal fired first.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Command, e.Timeout)
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(command string, timeout time.Duration) *TimeoutError {
	return &TimeoutError{Command: command, Timeout: timeout}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// ProviderErrorKind classifies failures from the text-generation backends
type ProviderErrorKind int

const (
	// ProviderUnauthorized means the backend rejected the API key (401/403)
	ProviderUnauthorized ProviderErrorKind = iota
	// ProviderRateLimited means the backend returned 429
	ProviderRateLimited
	// ProviderTimeout means the request exceeded the client deadline
	ProviderTimeout
	// ProviderNetwork means the backend could not be reached
	ProviderNetwork
	// ProviderBadStatus means any other non-2xx response
	ProviderBadStatus
	// ProviderMalformed means the response body did not have the expected shape
	ProviderMalformed
)

// ProviderError represents a classified failure from a text-generation backend.
// Detail never contains credentials; response bodies are truncated by the caller.
type ProviderError struct {
	Kind   ProviderErrorKind
	Status int
	Detail string
	Err    error
}

func (e *ProviderError) Error() string {
	switch e.Kind {
	case ProviderUnauthorized:
		return fmt.Sprintf("provider rejected the API key (status %d); run 'gitwiz config set' to update it", e.Status)
	case ProviderRateLimited:
		return fmt.Sprintf("provider rate limit reached (status %d); wait a little and retry", e.Status)
	case ProviderTimeout:
		return "provider request timed out; retry in a moment"
	case ProviderNetwork:
		if e.Err != nil {
			return fmt.Sprintf("could not reach provider: %v", e.Err)
		}
		return "could not reach provider"
	case ProviderMalformed:
		if e.Detail != "" {
			return fmt.Sprintf("provider returned an unexpected response: %s", e.Detail)
		}
		return "provider returned an unexpected response"
	default:
		return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Detail)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new ProviderError
func NewProviderError(kind ProviderErrorKind, status int, detail string, err error) *ProviderError {
	return &ProviderError{Kind: kind, Status: status, Detail: detail, Err: err}
}

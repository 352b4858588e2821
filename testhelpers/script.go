package testhelpers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"gitwiz.dev/gitwiz/internal/execx"
	"gitwiz.dev/gitwiz/internal/tui"
)

// ScriptedGit replays canned results for git invocations, keyed by the
// joined argument list. Scripting the same argument list repeatedly
// queues the results in order; the last one sticks, so a flow may re-run
// a command after changing state and see the new answer. Unscripted
// invocations return a zero Result (exit 0, no output), which keeps
// read-only probes out of the way; anything a test depends on must be
// scripted explicitly.
type ScriptedGit struct {
	mu      sync.Mutex
	results map[string][]execx.Result
	errs    map[string]error
	calls   []string
}

// NewScriptedGit creates an empty scripted runner.
func NewScriptedGit() *ScriptedGit {
	return &ScriptedGit{
		results: make(map[string][]execx.Result),
		errs:    make(map[string]error),
	}
}

// Script queues a result for one exact argument list.
func (s *ScriptedGit) Script(args string, result execx.Result) {
	s.results[args] = append(s.results[args], result)
}

// ScriptError registers an error for one exact argument list.
func (s *ScriptedGit) ScriptError(args string, err error) {
	s.errs[args] = err
}

// Run implements git.Runner.
func (s *ScriptedGit) Run(_ context.Context, args ...string) (execx.Result, error) {
	key := strings.Join(args, " ")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, key)

	if err, ok := s.errs[key]; ok {
		return execx.Result{}, err
	}

	queue := s.results[key]
	if len(queue) == 0 {
		return execx.Result{}, nil
	}
	result := queue[0]
	if len(queue) > 1 {
		s.results[key] = queue[1:]
	}
	return result, nil
}

// RunTimeout implements git.Runner; the timeout is ignored.
func (s *ScriptedGit) RunTimeout(ctx context.Context, _ time.Duration, args ...string) (execx.Result, error) {
	return s.Run(ctx, args...)
}

// Calls returns every invocation seen so far, oldest first.
func (s *ScriptedGit) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// CalledWith reports whether any invocation matches the exact argument
// list.
func (s *ScriptedGit) CalledWith(args string) bool {
	for _, call := range s.Calls() {
		if call == args {
			return true
		}
	}
	return false
}

// ScriptedPrompter replays canned answers in order. Each answered prompt
// is recorded in Asked so tests can assert on the questions. Running out
// of scripted answers fails the interaction with an error, surfacing
// flows that prompt more than the test expected.
type ScriptedPrompter struct {
	ConfirmAnswers []bool
	InputAnswers   []string
	PasswordAnswer []string
	SelectAnswers  []string // values, not labels
	BranchAnswers  []string
	Asked          []string
	// OfferedBranches records the choice values presented by each
	// SelectBranch call.
	OfferedBranches [][]string
}

// Confirm implements tui.Prompter.
func (p *ScriptedPrompter) Confirm(message string, _ bool) (bool, error) {
	p.Asked = append(p.Asked, message)
	if len(p.ConfirmAnswers) == 0 {
		return false, fmt.Errorf("unscripted confirm prompt: %s", message)
	}
	answer := p.ConfirmAnswers[0]
	p.ConfirmAnswers = p.ConfirmAnswers[1:]
	return answer, nil
}

// Input implements tui.Prompter.
func (p *ScriptedPrompter) Input(message, defaultValue string) (string, error) {
	p.Asked = append(p.Asked, message)
	if len(p.InputAnswers) == 0 {
		return "", fmt.Errorf("unscripted input prompt: %s", message)
	}
	answer := p.InputAnswers[0]
	p.InputAnswers = p.InputAnswers[1:]
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Password implements tui.Prompter.
func (p *ScriptedPrompter) Password(message string) (string, error) {
	p.Asked = append(p.Asked, message)
	if len(p.PasswordAnswer) == 0 {
		return "", fmt.Errorf("unscripted password prompt: %s", message)
	}
	answer := p.PasswordAnswer[0]
	p.PasswordAnswer = p.PasswordAnswer[1:]
	return answer, nil
}

// Select implements tui.Prompter.
func (p *ScriptedPrompter) Select(message string, options []tui.SelectOption, _ int) (string, error) {
	p.Asked = append(p.Asked, message)
	if len(p.SelectAnswers) == 0 {
		return "", fmt.Errorf("unscripted select prompt: %s", message)
	}
	answer := p.SelectAnswers[0]
	p.SelectAnswers = p.SelectAnswers[1:]
	for _, opt := range options {
		if opt.Value == answer {
			return answer, nil
		}
	}
	return "", fmt.Errorf("scripted select answer %q is not among the options for: %s", answer, message)
}

// SelectBranch implements tui.Prompter.
func (p *ScriptedPrompter) SelectBranch(message string, choices []tui.BranchChoice, _ int) (string, error) {
	p.Asked = append(p.Asked, message)
	values := make([]string, len(choices))
	for i, choice := range choices {
		values[i] = choice.Value
	}
	p.OfferedBranches = append(p.OfferedBranches, values)
	if len(p.BranchAnswers) == 0 {
		return "", fmt.Errorf("unscripted branch prompt: %s", message)
	}
	answer := p.BranchAnswers[0]
	p.BranchAnswers = p.BranchAnswers[1:]
	for _, choice := range choices {
		if choice.Value == answer {
			return answer, nil
		}
	}
	return "", fmt.Errorf("scripted branch answer %q is not among the choices for: %s", answer, message)
}

var _ tui.Prompter = (*ScriptedPrompter)(nil)

// Package execx spawns and supervises external tool invocations with
// timeout and cancellation handling. It knows nothing about git; callers
// interpret the captured output themselves.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
)

// Timeout policy. The default guards against interactive hangs such as
// credential prompts issued by the wrapped tool; long-running operations
// override it.
const (
	DefaultTimeout = 30 * time.Second
	PushTimeout    = 300 * time.Second
	UpgradeTimeout = 120 * time.Second
)

// Command describes a single external tool invocation.
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Env     []string      // appended to the inherited environment
	Timeout time.Duration // zero means DefaultTimeout
}

// Result holds the outcome of one invocation. It is produced once and
// never mutated. A non-zero exit code is data, not an error: the wrapped
// tool's exit codes do not reliably say whether the user-intended outcome
// happened, so classification belongs to the caller.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner runs external commands. Flows depend on this interface so tests
// can drive them with scripted results instead of real processes.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Executor is the real-process Runner.
type Executor struct {
	debugf func(format string, args ...interface{})
}

// New creates an Executor without debug logging.
func New() *Executor {
	return &Executor{}
}

// NewWithDebug creates an Executor that reports each invocation through
// the given debug logger.
func NewWithDebug(debugf func(format string, args ...interface{})) *Executor {
	return &Executor{debugf: debugf}
}

// Run executes the command and waits for it to finish.
//
// Error contract:
//   - the executable cannot be launched at all: *errors.StartError
//   - the internal deadline fires: *errors.TimeoutError
//   - the caller's ctx fires: wraps errors.ErrOperationCancelled
//   - the process exits, with any code: Result, nil error
//
// On timeout or cancellation the whole process group is terminated;
// termination failure is tolerated since the process may already be gone.
func (e *Executor) Run(ctx context.Context, cmd Command) (Result, error) {
	timeout := cmd.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	proc := exec.CommandContext(runCtx, cmd.Name, cmd.Args...)
	proc.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		proc.Env = append(os.Environ(), cmd.Env...)
	}
	configureProcess(proc)
	proc.Cancel = func() error {
		terminateProcess(proc)
		return nil
	}

	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	id := invocationID()
	e.debug("exec [%s] %s %s (dir=%s timeout=%s)", id, cmd.Name, strings.Join(cmd.Args, " "), cmd.Dir, timeout)

	start := time.Now()
	err := proc.Run()
	elapsed := time.Since(start).Round(time.Millisecond)

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		e.debug("exec [%s] exit=0 elapsed=%s", id, elapsed)
		return result, nil
	}

	// The run context fired: decide whether the operator cancelled or the
	// internal deadline expired. The distinction matters to callers.
	if runCtx.Err() != nil {
		if ctx.Err() != nil {
			e.debug("exec [%s] cancelled after %s", id, elapsed)
			return Result{}, fmt.Errorf("%s: %w", cmd.Name, gitwizerrors.ErrOperationCancelled)
		}
		e.debug("exec [%s] timed out after %s", id, elapsed)
		return Result{}, gitwizerrors.NewTimeoutError(cmd.Name, timeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		e.debug("exec [%s] exit=%d elapsed=%s", id, result.ExitCode, elapsed)
		return result, nil
	}

	e.debug("exec [%s] start failed: %v", id, err)
	return Result{}, gitwizerrors.NewStartError(cmd.Name, err)
}

func (e *Executor) debug(format string, args ...interface{}) {
	if e.debugf != nil {
		e.debugf(format, args...)
	}
}

// invocationID returns a short correlation id so interleaved invocations
// can be told apart in the debug log.
func invocationID() string {
	return uuid.NewString()[:8]
}

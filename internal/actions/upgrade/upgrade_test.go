package upgrade_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"gitwiz.dev/gitwiz/internal/actions/upgrade"
	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
	"gitwiz.dev/gitwiz/internal/execx"
	"gitwiz.dev/gitwiz/internal/runtime"
	"gitwiz.dev/gitwiz/internal/tui"
)

type fakeExecutor struct {
	result execx.Result
	err    error
	last   execx.Command
}

func (f *fakeExecutor) Run(_ context.Context, cmd execx.Command) (execx.Result, error) {
	f.last = cmd
	return f.result, f.err
}

func newFakeContext(exec *fakeExecutor) *runtime.Context {
	splog := tui.NewSplog()
	splog.SetQuiet(true)
	return &runtime.Context{Splog: splog, Exec: exec}
}

func TestUpgradeInstallsLatest(t *testing.T) {
	exec := &fakeExecutor{}
	rc := newFakeContext(exec)

	err := upgrade.Action(context.Background(), rc)
	require.NoError(t, err)

	require.Equal(t, "go", exec.last.Name)
	require.Equal(t, []string{"install", "gitwiz.dev/gitwiz/cmd/gitwiz@latest"}, exec.last.Args)
	require.Equal(t, execx.UpgradeTimeout, exec.last.Timeout)
}

func TestUpgradeSurfacesInstallFailure(t *testing.T) {
	exec := &fakeExecutor{result: execx.Result{
		ExitCode: 1,
		Stderr:   "go: gitwiz.dev/gitwiz/cmd/gitwiz@latest: module lookup disabled\n",
	}}
	rc := newFakeContext(exec)

	err := upgrade.Action(context.Background(), rc)
	require.Error(t, err)
	require.Contains(t, err.Error(), "exited with code 1")
}

func TestUpgradeReportsMissingToolchain(t *testing.T) {
	startErr := gitwizerrors.NewStartError("go", fmt.Errorf("executable file not found in $PATH"))
	exec := &fakeExecutor{err: startErr}
	rc := newFakeContext(exec)

	err := upgrade.Action(context.Background(), rc)
	require.Error(t, err)

	var asStart *gitwizerrors.StartError
	require.True(t, errors.As(err, &asStart))
}

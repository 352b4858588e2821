package sync_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"gitwiz.dev/gitwiz/internal/actions/sync"
	"gitwiz.dev/gitwiz/internal/execx"
	"gitwiz.dev/gitwiz/internal/git"
	"gitwiz.dev/gitwiz/internal/runtime"
	"gitwiz.dev/gitwiz/internal/tui"
	"gitwiz.dev/gitwiz/testhelpers"
)

type fakeComparer struct {
	merged map[string]bool
}

func (f *fakeComparer) IsAncestor(ancestor, _ string) (bool, error) {
	return f.merged[ancestor], nil
}

func (f *fakeComparer) MergeBase(_, _ string) (string, error) { return "", nil }

type fakeHost struct {
	available   bool
	createdName string
	createdVis  string
	createErr   error
	url         string
	urlErr      error
}

func (f *fakeHost) Available() bool { return f.available }

func (f *fakeHost) CreateRepo(_ context.Context, name, visibility string) error {
	f.createdName = name
	f.createdVis = visibility
	return f.createErr
}

func (f *fakeHost) RepoURL(_ context.Context) (string, error) { return f.url, f.urlErr }

func (f *fakeHost) AuthToken(_ context.Context) (string, error) {
	return "", fmt.Errorf("no token scripted")
}

func newFakeContext(scripted *testhelpers.ScriptedGit, prompter *testhelpers.ScriptedPrompter) *runtime.Context {
	splog := tui.NewSplog()
	splog.SetQuiet(true)
	return &runtime.Context{
		Splog:    splog,
		Git:      scripted,
		Gateway:  git.NewGateway(scripted),
		History:  &fakeComparer{},
		Prompter: prompter,
		Host:     &fakeHost{available: true},
		RepoRoot: "/work/testrepo",
	}
}

const noSuchRemote = "error: No such remote 'origin'\n"

func TestSyncAbortsOnDirtyWorktree(t *testing.T) {
	t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

	scripted := testhelpers.NewScriptedGit()
	scripted.Script("status --porcelain", execx.Result{Stdout: " M change.txt\n"})
	rc := newFakeContext(scripted, &testhelpers.ScriptedPrompter{})

	err := sync.Action(context.Background(), rc, sync.Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "uncommitted changes")
	require.False(t, scripted.CalledWith("pull --rebase origin main"))
}

func TestSyncAbortsWithoutCommits(t *testing.T) {
	t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

	scripted := testhelpers.NewScriptedGit()
	scripted.Script("rev-parse --verify --quiet HEAD", execx.Result{ExitCode: 1})
	rc := newFakeContext(scripted, &testhelpers.ScriptedPrompter{})

	err := sync.Action(context.Background(), rc, sync.Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no commits")
}

func TestSyncHappyPath(t *testing.T) {
	t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

	scripted := testhelpers.NewScriptedGit()
	scripted.Script("branch --show-current", execx.Result{Stdout: "main\n"})
	scripted.Script("remote get-url origin", execx.Result{Stdout: "git@github.com:me/app.git\n"})
	prompter := &testhelpers.ScriptedPrompter{}
	rc := newFakeContext(scripted, prompter)

	err := sync.Action(context.Background(), rc, sync.Options{})
	require.NoError(t, err)

	require.True(t, scripted.CalledWith("ls-remote origin"))
	require.True(t, scripted.CalledWith("pull --rebase origin main"))
	require.True(t, scripted.CalledWith("push -u origin main"))
	require.Empty(t, prompter.Asked)
}

func TestSyncGuidedRemoteCreation(t *testing.T) {
	t.Run("creates and links a repository", func(t *testing.T) {
		t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

		scripted := testhelpers.NewScriptedGit()
		scripted.Script("branch --show-current", execx.Result{Stdout: "main\n"})
		scripted.Script("remote get-url origin", execx.Result{ExitCode: 2, Stderr: noSuchRemote})
		scripted.Script("remote get-url origin", execx.Result{Stdout: "https://github.com/me/testrepo.git\n"})
		host := &fakeHost{available: true, url: "https://github.com/me/testrepo"}
		prompter := &testhelpers.ScriptedPrompter{
			ConfirmAnswers: []bool{true},
			InputAnswers:   []string{""}, // accept the default name
			SelectAnswers:  []string{"private"},
		}
		rc := newFakeContext(scripted, prompter)
		rc.Host = host

		err := sync.Action(context.Background(), rc, sync.Options{})
		require.NoError(t, err)

		// The default repository name is the root directory's basename.
		require.Equal(t, "testrepo", host.createdName)
		require.Equal(t, "private", host.createdVis)
		require.True(t, scripted.CalledWith("push -u origin main"))
	})

	t.Run("declining stops the sync cleanly", func(t *testing.T) {
		t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

		scripted := testhelpers.NewScriptedGit()
		scripted.Script("branch --show-current", execx.Result{Stdout: "main\n"})
		scripted.Script("remote get-url origin", execx.Result{ExitCode: 2, Stderr: noSuchRemote})
		prompter := &testhelpers.ScriptedPrompter{ConfirmAnswers: []bool{false}}
		rc := newFakeContext(scripted, prompter)

		err := sync.Action(context.Background(), rc, sync.Options{})
		require.NoError(t, err)
		require.False(t, scripted.CalledWith("pull --rebase origin main"))
	})

	t.Run("missing gh CLI fails with guidance", func(t *testing.T) {
		t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

		scripted := testhelpers.NewScriptedGit()
		scripted.Script("branch --show-current", execx.Result{Stdout: "main\n"})
		scripted.Script("remote get-url origin", execx.Result{ExitCode: 2, Stderr: noSuchRemote})
		rc := newFakeContext(scripted, &testhelpers.ScriptedPrompter{})
		rc.Host = &fakeHost{available: false}

		err := sync.Action(context.Background(), rc, sync.Options{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "gh")
	})
}

func TestSyncVanishedRemote(t *testing.T) {
	notFound := execx.Result{ExitCode: 128, Stderr: "ERROR: Repository not found.\nfatal: Could not read from remote repository.\n"}

	t.Run("relinks after unlink is confirmed", func(t *testing.T) {
		t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

		scripted := testhelpers.NewScriptedGit()
		scripted.Script("branch --show-current", execx.Result{Stdout: "main\n"})
		scripted.Script("remote get-url origin", execx.Result{Stdout: "git@github.com:me/gone.git\n"})
		scripted.Script("ls-remote origin", notFound)
		scripted.Script("ls-remote origin", execx.Result{})
		host := &fakeHost{available: true, url: "https://github.com/me/fresh-app"}
		prompter := &testhelpers.ScriptedPrompter{
			ConfirmAnswers: []bool{true, true}, // unlink, then create
			InputAnswers:   []string{"fresh-app"},
			SelectAnswers:  []string{"public"},
		}
		rc := newFakeContext(scripted, prompter)
		rc.Host = host

		err := sync.Action(context.Background(), rc, sync.Options{})
		require.NoError(t, err)

		require.True(t, scripted.CalledWith("remote remove origin"))
		require.Equal(t, "fresh-app", host.createdName)
		require.Equal(t, "public", host.createdVis)
		require.True(t, scripted.CalledWith("push -u origin main"))
	})

	t.Run("keeping the dead remote is an error", func(t *testing.T) {
		t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

		scripted := testhelpers.NewScriptedGit()
		scripted.Script("branch --show-current", execx.Result{Stdout: "main\n"})
		scripted.Script("remote get-url origin", execx.Result{Stdout: "git@github.com:me/gone.git\n"})
		scripted.Script("ls-remote origin", notFound)
		prompter := &testhelpers.ScriptedPrompter{ConfirmAnswers: []bool{false}}
		rc := newFakeContext(scripted, prompter)

		err := sync.Action(context.Background(), rc, sync.Options{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "not found")
		require.False(t, scripted.CalledWith("pull --rebase origin main"))
	})
}

func TestSyncPullClassification(t *testing.T) {
	t.Run("missing upstream ref is tolerated", func(t *testing.T) {
		t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

		scripted := testhelpers.NewScriptedGit()
		scripted.Script("branch --show-current", execx.Result{Stdout: "main\n"})
		scripted.Script("remote get-url origin", execx.Result{Stdout: "git@github.com:me/app.git\n"})
		scripted.Script("pull --rebase origin main", execx.Result{
			ExitCode: 1,
			Stderr:   "fatal: couldn't find remote ref main\n",
		})
		rc := newFakeContext(scripted, &testhelpers.ScriptedPrompter{})

		err := sync.Action(context.Background(), rc, sync.Options{})
		require.NoError(t, err)
		require.True(t, scripted.CalledWith("push -u origin main"))
	})

	t.Run("other pull failures are fatal with raw output", func(t *testing.T) {
		t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

		scripted := testhelpers.NewScriptedGit()
		scripted.Script("branch --show-current", execx.Result{Stdout: "main\n"})
		scripted.Script("remote get-url origin", execx.Result{Stdout: "git@github.com:me/app.git\n"})
		scripted.Script("pull --rebase origin main", execx.Result{
			ExitCode: 1,
			Stderr:   "error: cannot pull with rebase: You have unstaged changes.\n",
		})
		rc := newFakeContext(scripted, &testhelpers.ScriptedPrompter{})

		err := sync.Action(context.Background(), rc, sync.Options{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "cannot pull with rebase")
		require.False(t, scripted.CalledWith("push -u origin main"))
	})
}

func TestSyncPushClassification(t *testing.T) {
	t.Run("rejected push surfaces the raw output", func(t *testing.T) {
		t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

		scripted := testhelpers.NewScriptedGit()
		scripted.Script("branch --show-current", execx.Result{Stdout: "main\n"})
		scripted.Script("remote get-url origin", execx.Result{Stdout: "git@github.com:me/app.git\n"})
		scripted.Script("push -u origin main", execx.Result{
			ExitCode: 1,
			Stderr:   "! [rejected] main -> main (fetch first)\nerror: failed to push some refs to 'origin'\n",
		})
		rc := newFakeContext(scripted, &testhelpers.ScriptedPrompter{})

		err := sync.Action(context.Background(), rc, sync.Options{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "[rejected]")
	})

	t.Run("remote vanishing mid-flow offers relink and retries", func(t *testing.T) {
		t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

		scripted := testhelpers.NewScriptedGit()
		scripted.Script("branch --show-current", execx.Result{Stdout: "main\n"})
		scripted.Script("remote get-url origin", execx.Result{Stdout: "git@github.com:me/app.git\n"})
		scripted.Script("push -u origin main", execx.Result{
			ExitCode: 128,
			Stderr:   "remote: Repository not found.\nfatal: repository 'https://github.com/me/app.git/' not found\n",
		})
		scripted.Script("push -u origin main", execx.Result{})
		host := &fakeHost{available: true, url: "https://github.com/me/app"}
		prompter := &testhelpers.ScriptedPrompter{
			ConfirmAnswers: []bool{true, true}, // unlink, then create
			InputAnswers:   []string{"app"},
			SelectAnswers:  []string{"private"},
		}
		rc := newFakeContext(scripted, prompter)
		rc.Host = host

		err := sync.Action(context.Background(), rc, sync.Options{})
		require.NoError(t, err)

		require.True(t, scripted.CalledWith("remote remove origin"))
		require.Equal(t, "app", host.createdName)
	})
}

func TestSyncBranchCleanup(t *testing.T) {
	branchListing := "  feature\n* main\n  release\n"

	t.Run("deletes confirmed merged branches locally and on origin", func(t *testing.T) {
		t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

		scripted := testhelpers.NewScriptedGit()
		scripted.Script("branch --show-current", execx.Result{Stdout: "main\n"})
		scripted.Script("remote get-url origin", execx.Result{Stdout: "git@github.com:me/app.git\n"})
		scripted.Script("branch --no-color", execx.Result{Stdout: branchListing})
		prompter := &testhelpers.ScriptedPrompter{ConfirmAnswers: []bool{true, false}}
		rc := newFakeContext(scripted, prompter)
		rc.History = &fakeComparer{merged: map[string]bool{"feature": true, "release": true}}

		err := sync.Action(context.Background(), rc, sync.Options{})
		require.NoError(t, err)

		require.True(t, scripted.CalledWith("branch -d feature"))
		require.True(t, scripted.CalledWith("push origin --delete feature"))
		// The declined branch stays.
		require.False(t, scripted.CalledWith("branch -d release"))
	})

	t.Run("unmerged branches are not offered", func(t *testing.T) {
		t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

		scripted := testhelpers.NewScriptedGit()
		scripted.Script("branch --show-current", execx.Result{Stdout: "main\n"})
		scripted.Script("remote get-url origin", execx.Result{Stdout: "git@github.com:me/app.git\n"})
		scripted.Script("branch --no-color", execx.Result{Stdout: branchListing})
		prompter := &testhelpers.ScriptedPrompter{}
		rc := newFakeContext(scripted, prompter)
		rc.History = &fakeComparer{merged: map[string]bool{}}

		err := sync.Action(context.Background(), rc, sync.Options{})
		require.NoError(t, err)
		require.Empty(t, prompter.Asked)
	})

	t.Run("keep-branches skips the phase", func(t *testing.T) {
		t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

		scripted := testhelpers.NewScriptedGit()
		scripted.Script("branch --show-current", execx.Result{Stdout: "main\n"})
		scripted.Script("remote get-url origin", execx.Result{Stdout: "git@github.com:me/app.git\n"})
		prompter := &testhelpers.ScriptedPrompter{}
		rc := newFakeContext(scripted, prompter)
		rc.History = &fakeComparer{merged: map[string]bool{"feature": true}}

		err := sync.Action(context.Background(), rc, sync.Options{KeepBranches: true})
		require.NoError(t, err)

		require.False(t, scripted.CalledWith("branch --no-color"))
		require.Empty(t, prompter.Asked)
	})

	t.Run("failed remote delete is a warning only", func(t *testing.T) {
		t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

		scripted := testhelpers.NewScriptedGit()
		scripted.Script("branch --show-current", execx.Result{Stdout: "main\n"})
		scripted.Script("remote get-url origin", execx.Result{Stdout: "git@github.com:me/app.git\n"})
		scripted.Script("branch --no-color", execx.Result{Stdout: "  feature\n* main\n"})
		scripted.Script("push origin --delete feature", execx.Result{
			ExitCode: 1,
			Stderr:   "error: unable to delete 'feature': remote ref does not exist\n",
		})
		prompter := &testhelpers.ScriptedPrompter{ConfirmAnswers: []bool{true}}
		rc := newFakeContext(scripted, prompter)
		rc.History = &fakeComparer{merged: map[string]bool{"feature": true}}

		err := sync.Action(context.Background(), rc, sync.Options{})
		require.NoError(t, err)
		require.True(t, scripted.CalledWith("branch -d feature"))
	})
}

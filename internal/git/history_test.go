package git_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitwiz.dev/gitwiz/internal/git"
	"gitwiz.dev/gitwiz/testhelpers"
)

func TestIsAncestor(t *testing.T) {
	t.Run("branch point is an ancestor of the branch", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("initial", "init"); err != nil {
				return err
			}
			if err := s.Repo.CreateAndCheckoutBranch("feature"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("feature work", "feature")
		})
		history := git.NewHistory(scene.Dir)

		ok, err := history.IsAncestor("main", "feature")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = history.IsAncestor("feature", "main")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("a ref is its own ancestor", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		history := git.NewHistory(scene.Dir)

		ok, err := history.IsAncestor("main", "main")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("diverged branches are not ancestors of each other", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("initial", "init"); err != nil {
				return err
			}
			if err := s.Repo.CreateAndCheckoutBranch("feature"); err != nil {
				return err
			}
			if err := s.Repo.CreateChangeAndCommit("feature work", "feature"); err != nil {
				return err
			}
			if err := s.Repo.CheckoutBranch("main"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("main work", "main")
		})
		history := git.NewHistory(scene.Dir)

		ok, err := history.IsAncestor("feature", "main")
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = history.IsAncestor("main", "feature")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("resolves HEAD and remote-tracking names", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("initial", "init"); err != nil {
				return err
			}
			if err := s.Repo.RunGit("update-ref", "refs/remotes/origin/main", "HEAD"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("second", "next")
		})
		history := git.NewHistory(scene.Dir)

		ok, err := history.IsAncestor("origin/main", "HEAD")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("unresolvable ref is an error", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, testhelpers.BasicSceneSetup)
		history := git.NewHistory(scene.Dir)

		_, err := history.IsAncestor("no-such-ref", "main")
		require.Error(t, err)
	})
}

func TestMergeBase(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewSceneParallel(t, func(s *testhelpers.Scene) error {
		return s.Repo.CreateChangeAndCommit("initial", "init")
	})
	branchPoint := testhelpers.Must(scene.Repo.GetCurrentSHA())

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("feature work", "feature"))
	require.NoError(t, scene.Repo.CheckoutBranch("main"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("main work", "main"))

	history := git.NewHistory(scene.Dir)

	base, err := history.MergeBase("main", "feature")
	require.NoError(t, err)
	require.Equal(t, branchPoint, base)
}

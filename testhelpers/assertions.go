// Package testhelpers provides testing utilities for the gitwiz CLI:
// a scene system backed by real throwaway Git repositories, and a small
// set of assertions shared across packages.
package testhelpers

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must panics if err is not nil, otherwise returns val. Useful in test
// setup code where an error should halt the test immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectBranches asserts that the repository has exactly the expected
// local branches, ignoring order.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	branches, err := repo.GetLocalBranches()
	require.NoError(t, err, "Failed to list branches")

	sort.Strings(branches)
	sort.Strings(expected)

	require.Equal(t, expected, branches, "Branches do not match")
}

// ExpectCommitSubjects asserts that the newest commits on ref have the
// expected subjects, newest first. Older commits beyond the expected list
// are ignored.
func ExpectCommitSubjects(t *testing.T, repo *GitRepo, ref string, expected []string) {
	t.Helper()

	subjects, err := repo.ListCommitMessages(ref)
	require.NoError(t, err, "Failed to list commits")

	if len(subjects) < len(expected) {
		require.Fail(t, "Not enough commits", "Expected %d commits, got %d", len(expected), len(subjects))
		return
	}

	require.Equal(t, expected, subjects[:len(expected)], "Commits do not match")
}

package testhelpers

import (
	"os"
	"testing"
)

// Scene is a test scene: a temporary directory holding a real Git
// repository, torn down automatically when the test finishes.
type Scene struct {
	Dir    string
	Repo   *GitRepo
	oldDir string
}

// SceneSetup arranges a scene before the test body runs.
type SceneSetup func(*Scene) error

// NewScene creates a scene and changes the working directory into it, so
// code that resolves the repository from the current directory sees the
// scene's repository. Because it touches the process working directory,
// tests using NewScene must not run in parallel; use NewSceneParallel when
// the test addresses the repository through Scene.Dir instead.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	scene := newScene(t, setup)

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	scene.oldDir = oldDir

	if err := os.Chdir(scene.Dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldDir)
	})

	return scene
}

// NewSceneParallel creates a scene without changing the working directory,
// making it safe for tests that call t.Parallel(). Callers reach the
// repository via Scene.Dir.
func NewSceneParallel(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()
	return newScene(t, setup)
}

func newScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "gitwiz-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		// Keep the scene around for inspection when debugging
		if os.Getenv("DEBUG") == "" {
			os.RemoveAll(tmpDir)
		}
	})

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  tmpDir,
		Repo: repo,
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// BasicSceneSetup seeds the scene with a single commit on main.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}

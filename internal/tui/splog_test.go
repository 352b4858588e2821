package tui

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateLumberjackLogger(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		logger := createLumberjackLogger("/tmp/gitwiz-test.log")
		require.Equal(t, 1, logger.MaxSize)
		require.Equal(t, 2, logger.MaxBackups)
		require.Equal(t, 30, logger.MaxAge)
		require.False(t, logger.Compress)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("GITWIZ_LOG_MAX_SIZE", "5")
		t.Setenv("GITWIZ_LOG_MAX_BACKUPS", "0")
		t.Setenv("GITWIZ_LOG_MAX_AGE", "7")

		logger := createLumberjackLogger("/tmp/gitwiz-test.log")
		require.Equal(t, 5, logger.MaxSize)
		require.Equal(t, 0, logger.MaxBackups)
		require.Equal(t, 7, logger.MaxAge)
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		t.Setenv("GITWIZ_LOG_MAX_SIZE", "not-a-number")
		t.Setenv("GITWIZ_LOG_MAX_AGE", "-3")

		logger := createLumberjackLogger("/tmp/gitwiz-test.log")
		require.Equal(t, 1, logger.MaxSize)
		require.Equal(t, 30, logger.MaxAge)
	})
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("env override wins", func(t *testing.T) {
		custom := filepath.Join(t.TempDir(), "custom.log")
		t.Setenv("GITWIZ_LOG_FILE", custom)
		require.Equal(t, custom, GetLogFilePath())
	})

	t.Run("default lives under the home directory", func(t *testing.T) {
		t.Setenv("GITWIZ_LOG_FILE", "")
		path := GetLogFilePath()
		require.Contains(t, path, filepath.Join(".gitwiz", "logs"))
		require.Equal(t, "gitwiz.log", filepath.Base(path))
	})
}

func TestSplogQuietMode(t *testing.T) {
	splog := NewSplog()
	require.False(t, splog.IsQuiet())

	splog.SetQuiet(true)
	require.True(t, splog.IsQuiet())

	splog.SetQuiet(false)
	require.False(t, splog.IsQuiet())
}

func TestSplogFileLogging(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "gitwiz.log")

	splog, err := NewSplogWithConfig(logPath)
	require.NoError(t, err)

	// Quiet mode silences the console but file logging keeps going
	splog.SetQuiet(true)
	splog.Info("hello from the test")
	require.NoError(t, splog.Close())

	require.FileExists(t, logPath)
}

package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns where the rotating log file lives:
// GITWIZ_LOG_FILE when set, otherwise ~/.gitwiz/logs/gitwiz.log.
// Without a resolvable home directory the log lands in the working
// directory.
func GetLogFilePath() string {
	if custom := os.Getenv("GITWIZ_LOG_FILE"); custom != "" {
		return custom
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "gitwiz.log"
	}
	return filepath.Join(home, ".gitwiz", "logs", "gitwiz.log")
}

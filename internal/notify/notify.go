// Package notify provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notify

import (
	"os"

	"github.com/gen2brain/beeep"
	"github.com/mattn/go-isatty"
)

// notifier is the function used to deliver notifications. Tests swap it out.
var notifier func(title, message string, appIcon any) error = beeep.Notify

// SetNotifier replaces the notification function. Intended for tests.
func SetNotifier(fn func(title, message string, appIcon any) error) {
	notifier = fn
}

// ResetNotifier restores the default beeep-backed notification function.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	// Use empty string for icon - beeep handles platform defaults
	return notifier(title, message, "")
}

// Completed notifies that a long-running operation finished. It is a
// no-op outside interactive sessions so scripts and tests stay silent.
func Completed(message string) error {
	if os.Getenv("GITWIZ_TEST_NO_INTERACTIVE") != "" {
		return nil
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return nil
	}
	return Send("gitwiz", message)
}

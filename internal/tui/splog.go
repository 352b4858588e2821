package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Splog is the command logger: human-readable messages on the console,
// a full debug record in the rotating log file.
type Splog struct {
	logger    *slog.Logger
	writer    *os.File
	logWriter io.WriteCloser // rotating file sink, nil when file logging is off
	quiet     bool
}

// NewSplog returns a console-only logger. Setting DEBUG enables console
// debug lines.
func NewSplog() *Splog {
	splog, _ := NewSplogWithConfig("")
	return splog
}

// NewSplogWithConfig returns a logger that also records to logFilePath
// through a rotating writer. The file always captures debug level; the
// console stays message-only. An empty path skips file logging.
func NewSplogWithConfig(logFilePath string) (*Splog, error) {
	splog := &Splog{writer: os.Stdout}

	console := &consoleHandler{
		writer: splog.writer,
		debug:  os.Getenv("DEBUG") != "",
		quiet:  &splog.quiet,
	}
	handlers := []slog.Handler{console}

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		rotator := createLumberjackLogger(logFilePath)
		splog.logWriter = rotator
		handlers = append(handlers, slog.NewTextHandler(rotator, &slog.HandlerOptions{
			Level:       slog.LevelDebug,
			ReplaceAttr: stampTime,
		}))
	}

	splog.logger = slog.New(&teeHandler{handlers: handlers})
	return splog, nil
}

// stampTime rewrites the slog time attribute into a fixed, sortable
// layout for the file log.
func stampTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
	}
	return a
}

// createLumberjackLogger builds the rotating file writer. Size and
// retention come from GITWIZ_LOG_MAX_SIZE / GITWIZ_LOG_MAX_BACKUPS /
// GITWIZ_LOG_MAX_AGE; values that fail to parse or fall below the
// minimum keep the default.
func createLumberjackLogger(logFilePath string) *lumberjack.Logger {
	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1, // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
		Compress:   false,
	}

	if v, ok := logEnvInt("GITWIZ_LOG_MAX_SIZE", 1); ok {
		rotator.MaxSize = v
	}
	if v, ok := logEnvInt("GITWIZ_LOG_MAX_BACKUPS", 0); ok {
		rotator.MaxBackups = v
	}
	if v, ok := logEnvInt("GITWIZ_LOG_MAX_AGE", 1); ok {
		rotator.MaxAge = v
	}

	return rotator
}

func logEnvInt(name string, least int) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < least {
		return 0, false
	}
	return v, true
}

// SetQuiet suppresses console output while a prompt or picker owns the
// terminal. File logging is unaffected.
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet = quiet
}

// IsQuiet reports whether console output is currently suppressed.
func (s *Splog) IsQuiet() bool {
	return s.quiet
}

func (s *Splog) log(level slog.Level, msg string) {
	s.logger.Log(context.Background(), level, msg)
}

// sprintf formats when args are present and passes format through
// untouched otherwise, so callers may log pre-built strings containing
// percent signs.
// nolint // non-constant format strings are deliberate here
func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Info writes a plain message.
func (s *Splog) Info(format string, args ...interface{}) {
	s.log(slog.LevelInfo, sprintf(format, args...))
}

// Warn writes a warning with a leading marker.
func (s *Splog) Warn(format string, args ...interface{}) {
	s.log(slog.LevelWarn, "⚠️  "+sprintf(format, args...))
}

// Error writes an error with a leading marker.
func (s *Splog) Error(format string, args ...interface{}) {
	s.log(slog.LevelError, "❌ "+sprintf(format, args...))
}

// Debug writes a message that only reaches the console in debug mode.
// The file log records it regardless.
func (s *Splog) Debug(format string, args ...interface{}) {
	s.log(slog.LevelDebug, sprintf(format, args...))
}

// Tip writes a suggestion the user can act on.
func (s *Splog) Tip(format string, args ...interface{}) {
	s.log(slog.LevelInfo, "💡 "+sprintf(format, args...))
}

// Page prints pre-formatted content directly, bypassing the log
// handlers and the quiet gate.
func (s *Splog) Page(content string) {
	_, _ = fmt.Fprint(s.writer, content)
}

// Newline prints a blank line directly.
func (s *Splog) Newline() {
	_, _ = fmt.Fprintln(s.writer)
}

// Close flushes and closes the rotating log file if one was opened.
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}

// consoleHandler prints bare messages: no timestamps, no level prefix.
// Debug records are dropped unless debug mode is on, and everything is
// dropped while quiet is set.
type consoleHandler struct {
	writer io.Writer
	debug  bool
	quiet  *bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		return h.debug
	}
	return true
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if *h.quiet {
		return nil
	}
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *consoleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *consoleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// teeHandler forwards each record to every handler that wants it.
type teeHandler struct {
	handlers []slog.Handler
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	wrapped := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		wrapped[i] = handler.WithAttrs(attrs)
	}
	return &teeHandler{handlers: wrapped}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	wrapped := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		wrapped[i] = handler.WithGroup(name)
	}
	return &teeHandler{handlers: wrapped}
}

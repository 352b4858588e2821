// Package tui provides the terminal user interface for gitwiz.
//
// It handles:
//   - Interactive prompts and selections (using survey and bubbletea)
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and colors (using lipgloss)
//   - Syntax-highlighted diff previews (using chroma)
package tui

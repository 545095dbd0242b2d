// Package ui provides semantic text formatting for CLI output.
//
// This package defines formatters for different kinds of content (commands,
// paths, errors, highlighted values) that render appropriately based on
// terminal capabilities. When colors are available, content is colorized.
// When NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, quotes) are used instead.
//
// # Semantic Formatters
//
// Use the appropriate formatter for the content type:
//
//	ui.Code.Sprint("keyfold init --repo acme/vault")  // Commands
//	ui.Path.Sprint("prod/db")                          // Vault or file paths
//	ui.Success.Sprint("✓")                             // Success indicators
//	ui.Error.Sprint("✗")                               // Error indicators
//	ui.Info.Sprint("→")                                // Informational hints
//	ui.Highlight.Sprint("work")                        // Profile names, repos
//	ui.Muted.Sprint("optional")                        // De-emphasized text
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
package ui

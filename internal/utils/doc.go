// Package utils provides shared terminal helpers for the keyfold application.
//
// # Terminal Utilities
//
//   - ReadPassword: no-echo password entry (prompt on stderr)
//   - ReadLine: one line of input with a stdout prompt
//   - Confirm: y/n confirmation
//   - IsTerminal: checks whether stdin is a terminal
//
// Workflows never call these directly; the cmd layer wires them into the
// Prompter capability so workflow logic stays testable without a terminal.
package utils

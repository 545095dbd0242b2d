// Package logger provides leveled logging for keyfold CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is prefixed and colorized with fatih/color.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: shows info and warning messages
//   - --debug: shows all messages including debug details
//
// Without flags, only errors and user-facing warnings are shown.
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Resolved profile %s", name)
//
// Commands create a logger in their PersistentPreRun and pass it down.
//
// Secret values, tokens, and passwords must never be passed to any log
// method, at any level.
package logger

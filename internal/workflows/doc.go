// Package workflows implements the end-to-end command flows behind the
// keyfold CLI: login, init, store, get, history, delete, reset-password and
// profile management.
//
// Each workflow takes an Options struct and a context, talks to the user
// only through the injected Prompter, and returns a Result struct for the
// command layer to render. Keeping all terminal I/O behind Prompter and the
// page callbacks makes every flow testable against the in-memory remote.
package workflows

// Package audit provides append-only local audit logging for keyfold
// operations.
//
// Every vault-touching operation appends one JSON line to audit.jsonl in
// the keyfold config directory. Entries record metadata only (operation
// name, profile, resolved path, operation ID) and never secret values,
// passwords or tokens. Audit failures are deliberately swallowed so that
// a full disk or unwritable config directory cannot break vault access.
package audit

// Package audit provides an audit trail for autoarchive operations.
//
// Every pack, unpack, lookup and sync is recorded, as is every degraded-mode
// event raised by the catalog (remote unreachable, local file corrupt, ...).
// Passwords are never written to the trail.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line), by
// default at:
//
//	<data dir>/autoarchive/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Run ID shared by all entries of one CLI invocation
//   - OS user name
//   - Operation name
//   - Operation-specific details (archive names, fingerprint, source, ...)
//
// # Usage
//
//	trail := audit.New(settings.AuditLogPath(), username)
//	trail.Log(audit.Entry{Operation: audit.OpPack, ArchiveName: name})
//
// Trail.Reporter adapts the trail to catalog.Reporter so catalog events are
// recorded with the "event" operation.
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit

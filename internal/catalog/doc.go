// Package catalog stores the mapping from archive fingerprint to password.
//
// The catalog is an append-only sequence of Record values kept in two
// places:
//
//   - LocalStore: a JSON array in a file on this machine
//   - RemoteStore: the same JSON array embedded in one file of a GitHub Gist
//
// Both copies are read and rewritten in full on every update. Neither is
// derived from the other, so they can drift apart; Synchronizer.Sync exists
// to copy missing records across when that happens.
//
// # Degraded Mode
//
// Read failures never abort an operation. A remote that cannot be reached,
// rejects the token or returns garbage yields an empty sequence; a local
// file that cannot be parsed is treated as empty and preserved under a
// quarantine name before it is overwritten. Every such transition is
// delivered to the configured Reporter as an Event.
//
// # Concurrency
//
// Updates are read-modify-write with no compare-and-swap on the remote.
// Two writers that start from the same remote snapshot will each write back
// only their own addition, and the later write wins. The Synchronizer holds
// a FileLock for the duration of Record and Sync, which makes one local
// catalog single-writer across processes, but writers on other machines
// sharing the same Gist can still lose each other's records.
//
// # Lookup Order
//
// Lookup scans the remote sequence first and falls back to the local one
// when the remote is unreachable or has no match. The first record in
// stored order wins when fingerprints repeat.
package catalog

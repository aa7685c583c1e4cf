// Package utils provides shared utility functions for autoarchive.
//
// # Filesystem Utilities
//
//   - PathExists: distinguishes "missing" from other stat failures
//   - IsDir: reports whether a path is a directory
//
// # System Utilities
//
//   - Operator: user@host of whoever runs the command (recorded in the audit log)
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - Pluralize, MaskToken: small display helpers
//
// # I/O Utilities
//
//   - ReadSecret: reads a trimmed single value such as a token
//
// # Terminal Utilities
//
//   - IsTerminal, IsStdoutTerminal: TTY detection for stdin and stdout
//   - TerminalWidth: column count used to size tables
package utils

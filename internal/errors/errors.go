package errors

import (
	"errors"
	"fmt"
)

// Storage errors indicate problems with the local catalog file.
var (
	// ErrIO indicates a local file could not be read or written.
	ErrIO = errors.New("local i/o failure")

	// ErrParse indicates stored catalog content is malformed.
	ErrParse = errors.New("malformed catalog content")

	// ErrLocked indicates another writer holds the local catalog lock.
	ErrLocked = errors.New("catalog is locked by another writer")
)

// Remote errors indicate problems with the remote document store.
var (
	// ErrNetwork indicates the remote is unreachable, timed out, or answered with a non-2xx status.
	ErrNetwork = errors.New("remote store unavailable")

	// ErrAuth indicates the remote rejected the configured token.
	// It wraps ErrNetwork so that callers degrading on network failures also degrade on it.
	ErrAuth = fmt.Errorf("remote rejected credentials: %w", ErrNetwork)

	// ErrRemoteNotConfigured indicates no token or document ID was supplied.
	ErrRemoteNotConfigured = errors.New("remote store is not configured")
)

// Archiver errors indicate failures of the external compression tool.
var (
	// ErrArchiver indicates the archiver exited with a non-zero status.
	ErrArchiver = errors.New("archiver failed")

	// ErrArchiverNotFound indicates the archiver executable could not be started.
	ErrArchiverNotFound = errors.New("archiver executable not found")
)

// Lookup errors.
var (
	// ErrNotFound indicates no catalog record matches a fingerprint.
	ErrNotFound = errors.New("no catalog record matches this archive")
)

// Input errors indicate invalid arguments or configuration.
var (
	// ErrInvalidLength indicates a password length below one.
	ErrInvalidLength = errors.New("password length must be at least 1")

	// ErrSourceNotFound indicates the path to archive does not exist.
	ErrSourceNotFound = errors.New("source path not found")

	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrInvalidConfig indicates the configuration file is malformed or incomplete.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD form.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)

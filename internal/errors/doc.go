// Package errors provides typed error values for autoarchive.
//
// Sentinel errors let callers branch on failure kinds with errors.Is()
// instead of matching message text.
//
// # Error Categories
//
//   - Storage errors: local catalog file problems (ErrIO, ErrParse, ErrLocked)
//   - Remote errors: document store problems (ErrNetwork, ErrAuth, ErrRemoteNotConfigured)
//   - Archiver errors: external tool failures (ErrArchiver, ErrArchiverNotFound)
//   - Lookup results: ErrNotFound, returned only by workflows for CLI messaging
//   - Input errors: bad arguments or configuration (ErrInvalidLength, ErrSourceNotFound, ...)
//
// ErrAuth wraps ErrNetwork, so a rejected token satisfies both:
//
//	if errors.Is(err, kerrors.ErrAuth) {
//	    // ask the user to check the token
//	} else if errors.Is(err, kerrors.ErrNetwork) {
//	    // remote temporarily absent, continue local-only
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading %s: %w", path, errors.ErrIO)
package errors

// Package workflows provides high-level orchestration for autoarchive commands.
//
// Workflows coordinate the archiver, the credential catalog and the audit
// trail to implement complete user-facing features. Each workflow handles
// a single command's business logic, independent of CLI concerns like flag
// parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Builds Deps from the loaded configuration
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Resolving input paths and glob patterns
//   - Generating passwords and fingerprints
//   - Recording and looking up catalog records
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Pack: archives a folder or file under a generated password and records it
//   - Unpack: fingerprints archives, looks up their passwords and extracts them
//   - Lookup: resolves a file or fingerprint to its catalog record
//   - List: shows both catalogs side by side, marking duplicates
//   - Sync: copies records missing from one store into the other
//   - Generate: produces passwords without archiving anything
//   - Fingerprint: prints content digests of files
//   - Log: reads and filters the audit trail
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Lookup(ctx, deps, opts)
//	if errors.Is(err, kerrors.ErrNotFound) {
//	    // no record for this archive
//	}
//
// A remote store that cannot be reached is not an error: results carry
// RemoteErr and the catalog reports the event.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// It bounds remote requests, archiver runs and lock waits.
package workflows

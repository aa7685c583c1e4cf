package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/autoarchive/internal/audit"
	"github.com/PolarWolf314/autoarchive/internal/catalog"
	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
)

// UnpackOptions configures the unpack workflow.
type UnpackOptions struct {
	// Patterns are archive files, directories or globs.
	Patterns []string

	// BaseDir resolves relative patterns. Empty means the working directory.
	BaseDir string

	// RestoreDir overrides Deps.RestoreDir.
	RestoreDir string
}

// UnpackItem is the outcome for one archive.
type UnpackItem struct {
	Archive     string
	Fingerprint string

	// Record is nil when no password was found.
	Record *catalog.Record
	Source catalog.Source

	// Err is ErrNotFound, an archiver error or an I/O error.
	Err error
}

// UnpackResult contains the outcome of an unpack operation.
type UnpackResult struct {
	Items      []UnpackItem
	RestoreDir string

	// RemoteErr is the last remote failure seen while looking up passwords.
	RemoteErr error
}

// Failed counts items that were not extracted.
func (r *UnpackResult) Failed() int {
	n := 0
	for _, item := range r.Items {
		if item.Err != nil {
			n++
		}
	}
	return n
}

// Unpack extracts every archive matched by opts.Patterns with the password
// recorded for its fingerprint.
//
// Archives are processed independently: a missing record or a failed
// extraction is reported on the item and the next archive is tried.
//
// Returns ErrNoFilesFound or ErrSourceNotFound if the patterns match nothing.
func Unpack(ctx context.Context, deps Deps, opts UnpackOptions) (*UnpackResult, error) {
	archives, err := ResolveFiles(opts.Patterns, opts.BaseDir, catalog.ArchiveExtension)
	if err != nil {
		return nil, err
	}

	restoreDir := opts.RestoreDir
	if restoreDir == "" {
		restoreDir = deps.RestoreDir
	}

	result := &UnpackResult{RestoreDir: restoreDir}
	for _, archive := range archives {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		item := unpackOne(ctx, deps, archive, restoreDir)
		if item.remoteErr != nil {
			result.RemoteErr = item.remoteErr
		}
		result.Items = append(result.Items, item.UnpackItem)
	}

	return result, nil
}

type unpackOutcome struct {
	UnpackItem
	remoteErr error
}

func unpackOne(ctx context.Context, deps Deps, archive, restoreDir string) unpackOutcome {
	out := unpackOutcome{UnpackItem: UnpackItem{Archive: archive}}

	found, err := lookupFile(ctx, deps, archive)
	if err != nil {
		out.Err = err
		return out
	}
	out.Fingerprint = found.fingerprint
	out.remoteErr = found.RemoteErr

	entry := audit.Entry{Operation: audit.OpUnpack, Fingerprint: found.fingerprint, OutputPath: restoreDir}

	if !found.Found() {
		out.Err = fmt.Errorf("%w: %s", kerrors.ErrNotFound, archive)
		entry.Error = out.Err.Error()
		deps.Audit.Log(entry)
		return out
	}

	out.Record = found.Record
	out.Source = found.Source
	entry.ArchiveName = found.Record.ArchiveName
	entry.OriginalName = found.Record.OriginalName
	entry.Source = string(found.Source)

	if err := deps.Archiver.Extract(ctx, archive, found.Record.Password, restoreDir); err != nil {
		out.Err = err
	}
	entry.Error = errString(out.Err)
	deps.Audit.Log(entry)

	return out
}

package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/autoarchive/internal/audit"
	"github.com/PolarWolf314/autoarchive/internal/catalog"
	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
	"github.com/PolarWolf314/autoarchive/internal/secrets"
)

// PackOptions configures the pack workflow.
type PackOptions struct {
	// Source is the folder or file to archive.
	Source string

	// OutputDir overrides Deps.OutputDir.
	OutputDir string

	// PasswordLength defaults to secrets.DefaultPasswordLength.
	PasswordLength int
}

// PackResult contains the outcome of a pack operation.
type PackResult struct {
	// Record is what was stored in the catalog.
	Record catalog.Record

	// ArchivePath is the created archive.
	ArchivePath string

	// RemoteStored is false when the record only reached the local catalog.
	RemoteStored bool

	// RemoteErr explains why the remote did not receive the record.
	RemoteErr error
}

// Pack archives opts.Source under a freshly generated password and records
// the archive's fingerprint with that password in the catalog.
//
// The archive gets a name that reveals nothing about its content; the
// original name is kept only in the record.
//
// Returns ErrSourceNotFound if the source does not exist.
// Returns ErrArchiver or ErrArchiverNotFound if the archive could not be
// created; nothing is recorded in that case.
// If the archive exists but the local catalog could not be saved, the
// result is returned together with the error so the caller can still show
// where the archive is.
func Pack(ctx context.Context, deps Deps, opts PackOptions) (*PackResult, error) {
	source := filepath.Clean(opts.Source)
	if _, err := os.Stat(source); err != nil {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrSourceNotFound, opts.Source)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = deps.OutputDir
	}

	length := opts.PasswordLength
	if length == 0 {
		length = secrets.DefaultPasswordLength
	}
	password, err := secrets.GeneratePassword(length)
	if err != nil {
		return nil, err
	}

	now := deps.now()
	archiveName := catalog.NewArchiveName(now)
	archivePath := filepath.Join(outputDir, archiveName)

	if err := deps.Archiver.Create(ctx, source, archivePath, password); err != nil {
		deps.Audit.Log(audit.Entry{Operation: audit.OpPack, OriginalName: filepath.Base(source), Error: err.Error()})
		return nil, err
	}

	fingerprint, err := secrets.Fingerprint(archivePath)
	if err != nil {
		return nil, fmt.Errorf("fingerprinting %s: %w", archivePath, err)
	}

	record := catalog.NewRecord(filepath.Base(source), archiveName, fingerprint, password, now)
	result := &PackResult{Record: record, ArchivePath: archivePath}

	stored, err := deps.Catalog.Record(ctx, record)
	if stored != nil {
		result.RemoteStored = stored.RemoteStored
		result.RemoteErr = stored.RemoteErr
	}

	deps.Audit.Log(audit.Entry{
		Operation:    audit.OpPack,
		OriginalName: record.OriginalName,
		ArchiveName:  record.ArchiveName,
		Fingerprint:  record.Fingerprint,
		RemoteStored: result.RemoteStored,
		Error:        errString(err),
	})

	if err != nil {
		return result, fmt.Errorf("recording %s: %w", archiveName, err)
	}

	return result, nil
}

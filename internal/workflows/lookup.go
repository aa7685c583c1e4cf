package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/autoarchive/internal/audit"
	"github.com/PolarWolf314/autoarchive/internal/catalog"
	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
	"github.com/PolarWolf314/autoarchive/internal/secrets"
)

// LookupOptions configures the lookup workflow. Exactly one field is set.
type LookupOptions struct {
	// Path is an archive whose fingerprint is computed.
	Path string

	// Fingerprint is a digest given directly.
	Fingerprint string
}

// LookupResult contains the outcome of a lookup.
type LookupResult struct {
	Fingerprint string
	Record      catalog.Record
	Source      catalog.Source
	RemoteErr   error
}

// Lookup finds the catalog record for an archive file or a fingerprint.
//
// For a file the SHA-256 fingerprint is tried first and the legacy MD5
// digest second, in each store.
//
// Returns ErrNotFound if no record matches.
func Lookup(ctx context.Context, deps Deps, opts LookupOptions) (*LookupResult, error) {
	var found fileLookup
	switch {
	case opts.Path != "" && opts.Fingerprint != "":
		return nil, fmt.Errorf("give either a path or a fingerprint, not both")
	case opts.Path != "":
		var err error
		found, err = lookupFile(ctx, deps, opts.Path)
		if err != nil {
			return nil, err
		}
	case opts.Fingerprint != "":
		fp := strings.ToLower(strings.TrimSpace(opts.Fingerprint))
		found = fileLookup{fingerprint: fp, LookupResult: deps.Catalog.Lookup(ctx, fp)}
	default:
		return nil, fmt.Errorf("nothing to look up")
	}

	entry := audit.Entry{Operation: audit.OpLookup, Fingerprint: found.fingerprint}

	if !found.Found() {
		err := fmt.Errorf("%w: %s", kerrors.ErrNotFound, found.fingerprint)
		entry.Error = err.Error()
		deps.Audit.Log(entry)
		return &LookupResult{Fingerprint: found.fingerprint, RemoteErr: found.RemoteErr}, err
	}

	entry.ArchiveName = found.Record.ArchiveName
	entry.Source = string(found.Source)
	deps.Audit.Log(entry)

	return &LookupResult{
		Fingerprint: found.fingerprint,
		Record:      *found.Record,
		Source:      found.Source,
		RemoteErr:   found.RemoteErr,
	}, nil
}

type fileLookup struct {
	catalog.LookupResult
	fingerprint string
}

// lookupFile fingerprints path and looks it up by SHA-256, then MD5.
func lookupFile(ctx context.Context, deps Deps, path string) (fileLookup, error) {
	fp, legacy, err := secrets.Fingerprints(path)
	if err != nil {
		return fileLookup{}, err
	}

	return fileLookup{
		LookupResult: deps.Catalog.Lookup(ctx, fp, legacy),
		fingerprint:  fp,
	}, nil
}

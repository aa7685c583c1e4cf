package workflows

import (
	"context"
	"time"

	"github.com/PolarWolf314/autoarchive/internal/archiver"
	"github.com/PolarWolf314/autoarchive/internal/audit"
	"github.com/PolarWolf314/autoarchive/internal/catalog"
)

// Catalog is the part of catalog.Synchronizer the workflows use.
type Catalog interface {
	Record(ctx context.Context, r catalog.Record) (*catalog.RecordResult, error)
	Lookup(ctx context.Context, keys ...string) catalog.LookupResult
	List(ctx context.Context) catalog.ListResult
	Sync(ctx context.Context, dir catalog.SyncDirection) (*catalog.SyncResult, error)
}

// Deps are the collaborators shared by all workflows.
type Deps struct {
	Catalog  Catalog
	Archiver archiver.Archiver
	// Audit may be nil, in which case nothing is recorded.
	Audit *audit.Trail

	// OutputDir receives new archives.
	OutputDir string
	// RestoreDir receives extracted content.
	RestoreDir string

	// Now defaults to time.Now.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/autoarchive/internal/audit"
	"github.com/PolarWolf314/autoarchive/internal/catalog"
)

// SyncOptions configures the sync workflow.
type SyncOptions struct {
	Direction catalog.SyncDirection
}

// Sync copies records missing from one catalog into the other.
//
// Returns an error wrapping ErrNetwork, ErrAuth or ErrRemoteNotConfigured
// if the remote cannot be read, and ErrLocked if another writer holds the
// local catalog.
func Sync(ctx context.Context, deps Deps, opts SyncOptions) (*catalog.SyncResult, error) {
	result, err := deps.Catalog.Sync(ctx, opts.Direction)

	entry := audit.Entry{Operation: audit.OpSync, Direction: string(opts.Direction), Error: errString(err)}
	if result != nil {
		entry.AddedCount = len(result.Added)
	}
	deps.Audit.Log(entry)

	if err != nil {
		return nil, fmt.Errorf("syncing catalogs (%s): %w", opts.Direction, err)
	}
	return result, nil
}

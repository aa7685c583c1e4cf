package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/autoarchive/internal/catalog"
)

// ListScope selects which catalog List shows.
type ListScope string

const (
	ListMerged ListScope = "merged"
	ListRemote ListScope = "remote"
	ListLocal  ListScope = "local"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// Scope defaults to ListMerged.
	Scope ListScope

	// Filter keeps records whose original or archive name contains it (case-insensitive).
	Filter string
}

// ListRow is one record with where it is stored.
type ListRow struct {
	Record   catalog.Record
	InRemote bool
	InLocal  bool
	// Duplicate is set when another record in the listing has the same fingerprint.
	// Lookups return the first of them.
	Duplicate bool
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	Rows        []ListRow
	RemoteCount int
	LocalCount  int
	RemoteErr   error
}

// List reads both catalogs and reports each record's placement.
func List(ctx context.Context, deps Deps, opts ListOptions) (*ListResult, error) {
	scope := opts.Scope
	if scope == "" {
		scope = ListMerged
	}

	listing := deps.Catalog.List(ctx)

	var records []catalog.Record
	switch scope {
	case ListMerged:
		records = listing.Merged
	case ListRemote:
		records = listing.Remote
	case ListLocal:
		records = listing.Local
	default:
		return nil, fmt.Errorf("unknown list scope %q", scope)
	}

	inRemote := identities(listing.Remote)
	inLocal := identities(listing.Local)

	keyCount := make(map[string]int)
	for _, r := range records {
		if key := r.Key(); key != "" {
			keyCount[strings.ToLower(key)]++
		}
	}

	filter := strings.ToLower(opts.Filter)
	result := &ListResult{
		RemoteCount: len(listing.Remote),
		LocalCount:  len(listing.Local),
		RemoteErr:   listing.RemoteErr,
	}
	for _, r := range records {
		if filter != "" &&
			!strings.Contains(strings.ToLower(r.OriginalName), filter) &&
			!strings.Contains(strings.ToLower(r.ArchiveName), filter) {
			continue
		}

		id := recordIdentity(r)
		result.Rows = append(result.Rows, ListRow{
			Record:    r,
			InRemote:  inRemote[id],
			InLocal:   inLocal[id],
			Duplicate: keyCount[strings.ToLower(r.Key())] > 1,
		})
	}

	return result, nil
}

func recordIdentity(r catalog.Record) string {
	return strings.ToLower(r.Key()) + "\x00" + r.ArchiveName + "\x00" + r.Password
}

func identities(records []catalog.Record) map[string]bool {
	set := make(map[string]bool, len(records))
	for _, r := range records {
		set[recordIdentity(r)] = true
	}
	return set
}

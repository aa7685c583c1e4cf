package workflows

import (
	"context"
	"testing"
	"time"

	"github.com/PolarWolf314/autoarchive/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCatalog answers List with fixed sequences.
type stubCatalog struct {
	Catalog
	listing catalog.ListResult
	synced  []catalog.SyncDirection
	syncErr error
}

func (s *stubCatalog) List(context.Context) catalog.ListResult { return s.listing }

func (s *stubCatalog) Sync(_ context.Context, dir catalog.SyncDirection) (*catalog.SyncResult, error) {
	s.synced = append(s.synced, dir)
	if s.syncErr != nil {
		return nil, s.syncErr
	}
	return &catalog.SyncResult{Direction: dir, Added: s.listing.Local}, nil
}

func listRecord(name, fp string) catalog.Record {
	return catalog.NewRecord(name, "archive_"+name+".7z", fp, "pw-"+name, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
}

func TestListPlacementAndDuplicates(t *testing.T) {
	shared := listRecord("shared", "aa")
	remoteOnly := listRecord("remote", "bb")
	localOnly := listRecord("local", "cc")
	dupe := listRecord("dupe", "AA")

	stub := &stubCatalog{listing: catalog.ListResult{
		Remote: []catalog.Record{shared, remoteOnly},
		Local:  []catalog.Record{shared, localOnly, dupe},
		Merged: []catalog.Record{shared, remoteOnly, localOnly, dupe},
	}}
	deps := Deps{Catalog: stub}

	result, err := List(context.Background(), deps, ListOptions{})
	require.NoError(t, err)
	require.Len(t, result.Rows, 4)
	assert.Equal(t, 2, result.RemoteCount)
	assert.Equal(t, 3, result.LocalCount)

	assert.Equal(t, ListRow{Record: shared, InRemote: true, InLocal: true, Duplicate: true}, result.Rows[0])
	assert.Equal(t, ListRow{Record: remoteOnly, InRemote: true}, result.Rows[1])
	assert.Equal(t, ListRow{Record: localOnly, InLocal: true}, result.Rows[2])
	assert.True(t, result.Rows[3].Duplicate)
}

func TestListScopeAndFilter(t *testing.T) {
	stub := &stubCatalog{listing: catalog.ListResult{
		Remote: []catalog.Record{listRecord("photos", "aa")},
		Local:  []catalog.Record{listRecord("tax-2023", "bb"), listRecord("Photos-old", "cc")},
	}}
	deps := Deps{Catalog: stub}

	result, err := List(context.Background(), deps, ListOptions{Scope: ListLocal, Filter: "PHOTOS"})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Photos-old", result.Rows[0].Record.OriginalName)
	assert.False(t, result.Rows[0].Duplicate)

	_, err = List(context.Background(), deps, ListOptions{Scope: "everything"})
	assert.Error(t, err)
}

func TestListAgainstRealCatalog(t *testing.T) {
	env := newTestEnv(t)
	_, err := Pack(context.Background(), env.deps, PackOptions{Source: env.source(t, "photos")})
	require.NoError(t, err)

	result, err := List(context.Background(), env.deps, ListOptions{})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.True(t, result.Rows[0].InLocal)
	assert.False(t, result.Rows[0].InRemote)
	assert.Error(t, result.RemoteErr)
}

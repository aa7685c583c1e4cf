package workflows

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/PolarWolf314/autoarchive/internal/audit"
	"github.com/PolarWolf314/autoarchive/internal/catalog"
	"github.com/stretchr/testify/require"
)

// fakeArchiver writes "<source>|<password>" as the archive content, so each
// archive has a distinct fingerprint, and records extractions.
type fakeArchiver struct {
	mu         sync.Mutex
	createErr  error
	extractErr error
	created    []string
	extracted  []extraction
}

type extraction struct {
	archive, password, outDir string
}

func (a *fakeArchiver) Create(_ context.Context, source, output, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.createErr != nil {
		return a.createErr
	}
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}
	a.created = append(a.created, output)
	return os.WriteFile(output, []byte(source+"|"+password), 0600)
}

func (a *fakeArchiver) Extract(_ context.Context, archive, password, outDir string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.extracted = append(a.extracted, extraction{archive, password, outDir})
	return a.extractErr
}

type testEnv struct {
	deps     Deps
	archiver *fakeArchiver
	local    *catalog.LocalStore
	trail    *audit.Trail
	dir      string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	local := catalog.NewLocalStore(filepath.Join(dir, "data", "local_keys_db.json"), catalog.Discard)
	arch := &fakeArchiver{}
	trail := audit.New(filepath.Join(dir, "data", "audit.jsonl"), "tester")

	return &testEnv{
		deps: Deps{
			Catalog:    catalog.NewSynchronizer(catalog.OfflineRemote{}, local),
			Archiver:   arch,
			Audit:      trail,
			OutputDir:  filepath.Join(dir, "output_archives"),
			RestoreDir: filepath.Join(dir, "restored_files"),
			Now:        func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local) },
		},
		archiver: arch,
		local:    local,
		trail:    trail,
		dir:      dir,
	}
}

// source creates a folder with one file to archive.
func (e *testEnv) source(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.dir, "src", name)
	require.NoError(t, os.MkdirAll(path, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "a.txt"), []byte(name), 0600))
	return path
}

func (e *testEnv) auditOps(t *testing.T) []string {
	t.Helper()
	entries, err := audit.ReadEntries(e.trail.Path())
	require.NoError(t, err)
	ops := make([]string, len(entries))
	for i, entry := range entries {
		ops[i] = entry.Operation
	}
	return ops
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func newSynchronizerAt(path string) *catalog.Synchronizer {
	return catalog.NewSynchronizer(catalog.OfflineRemote{}, catalog.NewLocalStore(path, catalog.Discard))
}

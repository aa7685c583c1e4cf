package cmd

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/autoarchive/internal/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBeforeAnyOperation(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, nil, "log")
	require.NoError(t, err)
	assert.Contains(t, output, "No audit log found")
}

func TestLogRecordsOperations(t *testing.T) {
	env := setupTestEnvironment(t)
	_, err := runCLI(t, nil, "pack", env.source(t, "photos", "x"))
	require.NoError(t, err)
	_, err = runCLI(t, nil, "unpack", env.outputDir)
	require.NoError(t, err)
	password := env.localRecords()[0].Password

	output, err := runCLI(t, nil, "log")
	require.NoError(t, err)
	assert.Contains(t, output, "pack")
	assert.Contains(t, output, "unpack")
	assert.Contains(t, output, "photos -> archive_")
	assert.NotContains(t, output, password)

	output, err = runCLI(t, nil, "log", "--json", "--operation", "unpack")
	require.NoError(t, err)
	var entries []audit.Entry
	require.NoError(t, json.Unmarshal([]byte(output), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, audit.OpUnpack, entries[0].Operation)
	assert.Equal(t, "local", entries[0].Source)

	output, err = runCLI(t, nil, "log", "--operation", "sync")
	require.NoError(t, err)
	assert.Contains(t, output, "No audit log entries found matching the filters.")
}

func TestLogRecordsDegradedModeEvents(t *testing.T) {
	env := setupTestEnvironment(t)
	gist, srv := newGistServer(t)
	gist.status = 503
	env.useRemote(t, srv.URL)

	_, err := runCLI(t, nil, "pack", env.source(t, "photos", "x"))
	require.NoError(t, err)

	output, err := runCLI(t, nil, "log", "--operation", "event", "--oneline")
	require.NoError(t, err)
	assert.Contains(t, output, "remote_unavailable")
	assert.Contains(t, output, "remote_write_skipped")
}

func TestLogInvalidDate(t *testing.T) {
	env := setupTestEnvironment(t)
	_, err := runCLI(t, nil, "generate")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(env.dataDir, "audit.jsonl"))

	output, err := runCLI(t, nil, "log", "--since", "last-week")
	require.NoError(t, err)
	assert.Contains(t, output, "invalid date format")
}

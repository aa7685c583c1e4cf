package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/PolarWolf314/autoarchive/internal/catalog"
	"github.com/PolarWolf314/autoarchive/internal/configs"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

// fake7z stores "<source>|<password>" as the archive and refuses to extract
// with any other password, printing 7-Zip's message.
const fake7z = `#!/bin/sh
op=$1
shift
case "$op" in
a)
	out=$1
	src=$2
	pw=${3#-p}
	mkdir -p "$(dirname "$out")"
	printf '%s|%s' "$src" "$pw" > "$out"
	;;
x)
	arc=$1
	pw=${2#-p}
	dir=${3#-o}
	stored=$(cat "$arc")
	case "$stored" in
	*"|$pw") ;;
	*) echo "ERROR: Wrong password : $arc" >&2; exit 2 ;;
	esac
	mkdir -p "$dir"
	cp "$arc" "$dir/restored.txt"
	;;
*)
	exit 7
	;;
esac
`

type testEnv struct {
	root       string
	configPath string
	dataDir    string
	outputDir  string
	restoreDir string
	archiver   string
}

// setupTestEnvironment points the user directories at a temp dir and writes
// a config that uses the fake 7z and no remote.
func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake archiver is a shell script")
	}

	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("NO_COLOR", "1")
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })
	t.Setenv("AUTOARCHIVE_TOKEN", "")
	t.Setenv("AUTOARCHIVE_DOCUMENT_ID", "")

	env := &testEnv{
		root:       root,
		configPath: filepath.Join(root, "config", configs.AppName, "config.toml"),
		dataDir:    filepath.Join(root, "data", configs.AppName),
		outputDir:  filepath.Join(root, "out"),
		restoreDir: filepath.Join(root, "restored"),
		archiver:   filepath.Join(root, "bin", "7z"),
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(env.archiver), 0755))
	require.NoError(t, os.WriteFile(env.archiver, []byte(fake7z), 0755))

	env.writeConfig(t, nil)
	t.Cleanup(ResetGlobalState)
	return env
}

// writeConfig saves the base test config, adjusted by edit.
func (e *testEnv) writeConfig(t *testing.T, edit func(*configs.Config)) {
	t.Helper()
	cfg := configs.DefaultConfig()
	cfg.Archiver.Path = e.archiver
	cfg.Storage.OutputDir = e.outputDir
	cfg.Storage.RestoreDir = e.restoreDir
	if edit != nil {
		edit(cfg)
	}
	require.NoError(t, configs.SaveConfig(e.configPath, cfg))
}

func (e *testEnv) catalogPath() string {
	return filepath.Join(e.dataDir, "local_keys_db.json")
}

func (e *testEnv) localRecords() []catalog.Record {
	return catalog.NewLocalStore(e.catalogPath(), catalog.Discard).LoadAll()
}

// source creates a folder with one file to pack.
func (e *testEnv) source(t *testing.T, name, content string) string {
	t.Helper()
	dir := filepath.Join(e.root, "work", name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte(content), 0600))
	return dir
}

func (e *testEnv) archives(t *testing.T) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(e.outputDir, "*.7z"))
	require.NoError(t, err)
	return matches
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)
	drain := func(r io.Reader) {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}
	go drain(stdoutReader)
	go drain(stderrReader)

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// runCLI executes the root command with args from a clean flag state.
func runCLI(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()
	ResetGlobalState()
	if in != nil {
		stdin = in
	}
	RootCmd.SetArgs(args)
	return captureOutput(RootCmd.Execute)
}

// gistServer is an in-memory Gist holding the remote catalog.
type gistServer struct {
	mu      sync.Mutex
	content string
	patches int
	status  int
	// readmeOnly mimics a newly created gist that has no catalog file yet.
	readmeOnly bool
}

func newGistServer(t *testing.T) (*gistServer, *httptest.Server) {
	t.Helper()
	g := &gistServer{content: "[]"}
	srv := httptest.NewServer(g)
	t.Cleanup(srv.Close)
	return g, srv
}

func (g *gistServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != 0 {
		http.Error(w, "forced failure", g.status)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if g.readmeOnly {
			_, _ = w.Write([]byte(`{"files":{"README.md":{"content":"placeholder"}}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"files": map[string]any{catalog.DefaultFilename: map[string]string{"content": g.content}},
		})
	case http.MethodPatch:
		var doc struct {
			Files map[string]struct {
				Content string `json:"content"`
			} `json:"files"`
		}
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		g.content = doc.Files[catalog.DefaultFilename].Content
		g.readmeOnly = false
		g.patches++
		_, _ = w.Write([]byte(`{}`))
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (g *gistServer) records(t *testing.T) []catalog.Record {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	var records []catalog.Record
	if strings.TrimSpace(g.content) != "" {
		require.NoError(t, json.Unmarshal([]byte(g.content), &records))
	}
	return records
}

// useRemote points the config at srv.
func (e *testEnv) useRemote(t *testing.T, baseURL string) {
	t.Helper()
	e.writeConfig(t, func(c *configs.Config) {
		c.Remote.Token = "test-token"
		c.Remote.DocumentID = "gist123"
		c.Remote.BaseURL = baseURL
		c.Remote.TimeoutSeconds = 2
	})
}

package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testGistID = "abc123"

// fakeGist serves the subset of the Gist API the remote store uses.
type fakeGist struct {
	t        *testing.T
	mu       sync.Mutex
	filename string
	content  string
	status   int // forced status for every request when non-zero
	// onlyReadme serves a document holding nothing but README.md, like a
	// freshly created gist. The first PATCH of the catalog file clears it.
	onlyReadme bool
	requests []*http.Request
	bodies   [][]byte
}

func newFakeGist(t *testing.T, records []Record) (*fakeGist, *httptest.Server) {
	t.Helper()
	g := &fakeGist{t: t, filename: DefaultFilename}
	if records != nil {
		data, err := encodeRecords(records)
		require.NoError(t, err)
		g.content = string(data)
	}
	srv := httptest.NewServer(g)
	t.Cleanup(srv.Close)
	return g, srv
}

func (g *fakeGist) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	g.requests = append(g.requests, r.Clone(context.Background()))
	g.bodies = append(g.bodies, body)

	if g.status != 0 {
		w.WriteHeader(g.status)
		_, _ = w.Write([]byte(`{"message":"forced failure"}`))
		return
	}
	if r.URL.Path != "/gists/"+testGistID {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		return
	}

	switch r.Method {
	case http.MethodGet:
		doc := gistDocument{Files: map[string]*gistFile{g.filename: {Content: g.content}}}
		if g.onlyReadme {
			doc.Files = map[string]*gistFile{"README.md": {Content: "placeholder"}}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	case http.MethodPatch:
		var doc gistDocument
		if err := json.Unmarshal(body, &doc); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		if f, ok := doc.Files[g.filename]; ok && f != nil {
			g.content = f.Content
			g.onlyReadme = false
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (g *fakeGist) records() []Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	records, err := decodeRecords([]byte(g.content))
	require.NoError(g.t, err)
	return records
}

// patches decodes the catalog sent by every PATCH, in order.
func (g *fakeGist) patches() [][]Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out [][]Record
	for i, r := range g.requests {
		if r.Method != http.MethodPatch {
			continue
		}
		var doc gistDocument
		require.NoError(g.t, json.Unmarshal(g.bodies[i], &doc))
		f, ok := doc.Files[g.filename]
		require.True(g.t, ok, "PATCH without %s", g.filename)
		records, err := decodeRecords([]byte(f.Content))
		require.NoError(g.t, err)
		out = append(out, records)
	}
	return out
}

func newTestRemote(srv *httptest.Server, reporter Reporter) *RemoteStore {
	return NewRemoteStore(RemoteOptions{
		BaseURL:    srv.URL,
		DocumentID: testGistID,
		Token:      "test-token",
		Timeout:    2 * time.Second,
	}, reporter)
}

// unreachableRemote points at a server that has already shut down.
func unreachableRemote(t *testing.T, reporter Reporter) *RemoteStore {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return NewRemoteStore(RemoteOptions{BaseURL: url, DocumentID: testGistID, Token: "t", Timeout: time.Second}, reporter)
}

// eventLog collects reported events.
type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) Report(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) kinds() []EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	kinds := make([]EventKind, len(l.events))
	for i, e := range l.events {
		kinds[i] = e.Kind
	}
	return kinds
}

// memoryRemote is a RemoteCatalog with no revision check, like the Gist API.
type memoryRemote struct {
	mu       sync.Mutex
	records  []Record
	fetchErr error
	writeErr error
	writes   int
}

func (m *memoryRemote) FetchAll(context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return []Record{}, m.fetchErr
	}
	return slices.Clone(m.records), nil
}

func (m *memoryRemote) ReplaceAll(_ context.Context, records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.records = slices.Clone(records)
	m.writes++
	return nil
}

func (m *memoryRemote) snapshot() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.records)
}

func testRecord(name, fingerprint string) Record {
	return NewRecord(name, "archive_"+name+".7z", fingerprint, "pw-"+name, time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local))
}

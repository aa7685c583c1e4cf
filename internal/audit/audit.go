package audit

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/PolarWolf314/autoarchive/internal/catalog"
	"github.com/google/uuid"
)

// TimestampLayout is the format of Entry.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Operation names.
const (
	OpPack     = "pack"
	OpUnpack   = "unpack"
	OpLookup   = "lookup"
	OpSync     = "sync"
	OpGenerate = "generate"
	OpEvent    = "event"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	RunID     string `json:"run"`  // Shared by entries of one invocation.
	User      string `json:"user"` // OS user performing the action.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	OriginalName string `json:"original_name,omitempty"` // For pack.
	ArchiveName  string `json:"archive_name,omitempty"`  // For pack/unpack/lookup.
	Fingerprint  string `json:"fingerprint,omitempty"`   // For pack/unpack/lookup.
	Source       string `json:"source,omitempty"`        // Store that answered a lookup.
	RemoteStored bool   `json:"remote_stored,omitempty"` // For pack.
	Direction    string `json:"direction,omitempty"`     // For sync.
	AddedCount   int    `json:"added_count,omitempty"`   // For sync.
	OutputPath   string `json:"output_path,omitempty"`   // For unpack.
	Event        string `json:"event,omitempty"`         // For event.
	Detail       string `json:"detail,omitempty"`        // For event.
	Error        string `json:"error,omitempty"`
}

// Trail appends entries to one audit log file.
type Trail struct {
	path  string
	user  string
	runID string
	now   func() time.Time
	mu    sync.Mutex
}

// New returns a trail writing to path. An empty path disables logging.
func New(path, user string) *Trail {
	return &Trail{
		path:  path,
		user:  user,
		runID: uuid.NewString(),
		now:   time.Now,
	}
}

// Path returns the audit log path.
func (t *Trail) Path() string {
	return t.path
}

// RunID identifies this trail's entries.
func (t *Trail) RunID() string {
	return t.runID
}

// Log appends an entry to the audit log.
// If logging fails the entry is dropped; operations should not fail
// just because audit logging failed.
func (t *Trail) Log(entry Entry) {
	if t == nil || t.path == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = t.now().UTC().Format(TimestampLayout)
	}
	if entry.RunID == "" {
		entry.RunID = t.runID
	}
	if entry.User == "" {
		entry.User = t.user
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(t.path), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.Write(append(data, '\n'))
}

// Reporter records catalog events as "event" entries.
func (t *Trail) Reporter() catalog.Reporter {
	return catalog.ReporterFunc(func(e catalog.Event) {
		entry := Entry{
			Operation: OpEvent,
			Event:     string(e.Kind),
			Detail:    strings.TrimSpace(strings.Join([]string{e.Path, e.Detail}, " ")),
		}
		if !e.Time.IsZero() {
			entry.Timestamp = e.Time.UTC().Format(TimestampLayout)
		}
		if e.Err != nil {
			entry.Error = e.Err.Error()
		}
		t.Log(entry)
	})
}

// ReadEntries reads all entries from the audit log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// ParseTimestamp parses an entry timestamp, accepting plain RFC3339 as well.
func ParseTimestamp(ts string) (time.Time, bool) {
	t, err := time.Parse(TimestampLayout, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

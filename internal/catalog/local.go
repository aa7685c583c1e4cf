package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
)

// quarantineLayout is appended to a corrupt catalog's name when it is moved aside.
const quarantineLayout = "20060102-150405"

// LocalStore keeps the catalog as a JSON array in a single file.
// It owns the file: nothing else should write it.
type LocalStore struct {
	path     string
	reporter Reporter
	now      func() time.Time
}

// NewLocalStore returns a store backed by the file at path. The file need not exist yet.
func NewLocalStore(path string, reporter Reporter) *LocalStore {
	return &LocalStore{
		path:     path,
		reporter: reporter,
		now:      time.Now,
	}
}

// Path returns the catalog file location.
func (s *LocalStore) Path() string {
	return s.path
}

// LoadAll returns every record in the file. A missing file is an empty
// catalog; an unreadable or malformed one is reported and also treated as empty.
func (s *LocalStore) LoadAll() []Record {
	records, err := s.load()
	if err != nil {
		report(s.reporter, Event{Kind: EventLocalCorrupt, Path: s.path, Err: err})
		return []Record{}
	}
	return records
}

// AppendAndSave adds records to the end of the catalog and rewrites the file.
//
// If the existing file cannot be parsed it is renamed to
// <name>.corrupt-<timestamp> first, and the new file holds only records.
// The read and the write are not atomic together; callers that may run
// concurrently must hold a FileLock.
func (s *LocalStore) AppendAndSave(records ...Record) error {
	existing, err := s.load()
	if err != nil {
		report(s.reporter, Event{Kind: EventLocalCorrupt, Path: s.path, Err: err})
		s.quarantine()
		existing = []Record{}
	}

	return s.save(append(existing, records...))
}

func (s *LocalStore) load() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", kerrors.ErrIO, s.path, err)
	}
	return decodeRecords(data)
}

func (s *LocalStore) save(records []Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: creating %s: %v", kerrors.ErrIO, dir, err)
	}

	// Write a sibling file and rename it so a crash mid-write leaves the old catalog intact.
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file in %s: %v", kerrors.ErrIO, dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing %s: %v", kerrors.ErrIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", kerrors.ErrIO, tmpName, err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", kerrors.ErrIO, tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", kerrors.ErrIO, s.path, err)
	}
	return nil
}

func (s *LocalStore) quarantine() {
	target := s.path + ".corrupt-" + s.now().Format(quarantineLayout)
	if err := os.Rename(s.path, target); err != nil {
		report(s.reporter, Event{Kind: EventLocalQuarantined, Path: s.path, Err: err})
		return
	}
	report(s.reporter, Event{Kind: EventLocalQuarantined, Path: s.path, Detail: target})
}

// decodeRecords parses a serialized catalog. Blank input is an empty catalog.
func decodeRecords(data []byte) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrParse, err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// encodeRecords serializes a catalog as an indented JSON array without HTML escaping,
// so passwords containing & < > stay readable.
func encodeRecords(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

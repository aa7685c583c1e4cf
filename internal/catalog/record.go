package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the format of Record.CreatedAt.
const TimestampLayout = "2006-01-02 15:04:05"

// ArchiveExtension is appended to generated archive names.
const ArchiveExtension = ".7z"

// Record maps one archive's fingerprint to the password that opens it.
// Records are never modified once written.
type Record struct {
	OriginalName string `json:"original_name"`
	ArchiveName  string `json:"archive_name"`
	Fingerprint  string `json:"fingerprint,omitempty"`
	Password     string `json:"password"`
	CreatedAt    string `json:"created_at"`

	// LegacyMD5 holds the digest of records written by the original tool,
	// which stored it under "md5". It is kept so rewrites stay readable by that tool.
	LegacyMD5 string `json:"md5,omitempty"`
}

// NewRecord builds a record stamped with createdAt in the local time zone.
func NewRecord(originalName, archiveName, fingerprint, password string, createdAt time.Time) Record {
	return Record{
		OriginalName: originalName,
		ArchiveName:  archiveName,
		Fingerprint:  strings.ToLower(fingerprint),
		Password:     password,
		CreatedAt:    createdAt.Local().Format(TimestampLayout),
	}
}

// Key returns the digest the record is looked up by.
func (r Record) Key() string {
	if r.Fingerprint != "" {
		return r.Fingerprint
	}
	return r.LegacyMD5
}

// Matches reports whether the record is keyed by fingerprint.
// Records without any digest never match.
func (r Record) Matches(fingerprint string) bool {
	key := r.Key()
	return key != "" && strings.EqualFold(key, strings.TrimSpace(fingerprint))
}

// Created parses CreatedAt. The second result is false if the stored text is not a timestamp.
func (r Record) Created() (time.Time, bool) {
	t, err := time.ParseInLocation(TimestampLayout, r.CreatedAt, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// identity distinguishes records when merging two sequences.
func (r Record) identity() string {
	return r.Key() + "\x00" + r.ArchiveName + "\x00" + r.Password
}

// NewArchiveName returns a name that says nothing about the archive's content,
// e.g. archive_1718000000_3f9a.7z.
func NewArchiveName(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
	return fmt.Sprintf("archive_%d_%s%s", now.Unix(), suffix, ArchiveExtension)
}

// find returns the first record matching any of keys, trying keys in order.
func find(records []Record, keys []string) *Record {
	for _, key := range keys {
		for i := range records {
			if records[i].Matches(key) {
				r := records[i]
				return &r
			}
		}
	}
	return nil
}

// missingFrom returns the records of src that have no identical record in dst, in src order.
func missingFrom(dst, src []Record) []Record {
	present := make(map[string]bool, len(dst))
	for _, r := range dst {
		present[r.identity()] = true
	}

	var missing []Record
	for _, r := range src {
		id := r.identity()
		if present[id] {
			continue
		}
		present[id] = true
		missing = append(missing, r)
	}
	return missing
}

package workflows

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/PolarWolf314/autoarchive/internal/audit"
	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
	"github.com/PolarWolf314/autoarchive/internal/ui"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Path is the audit log file.
	Path string

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string

	// RunID keeps only the entries of one invocation.
	RunID string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log.
//
// Returns ErrNoFilesFound if no audit log exists.
// Returns ErrInvalidDateFormat if the date format is invalid.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if opts.Path == "" {
		return nil, kerrors.ErrNoFilesFound
	}

	entries, err := audit.ReadEntries(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	if entries == nil {
		return nil, kerrors.ErrNoFilesFound
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	filtered := entries

	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.TrimSpace(ops[i])
		}
		filtered = filterByOperations(filtered, ops)
	}

	if opts.RunID != "" {
		filtered = filterEntries(filtered, func(e audit.Entry) bool { return e.RunID == opts.RunID })
	}

	if opts.Since != "" {
		sinceTime, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := audit.ParseTimestamp(e.Timestamp)
			return ok && !t.Before(sinceTime)
		})
	}

	if opts.Until != "" {
		untilTime, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the entire day by setting to end of day.
		untilTime = untilTime.Add(24*time.Hour - time.Nanosecond)
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := audit.ParseTimestamp(e.Timestamp)
			return ok && !t.After(untilTime)
		})
	}

	if opts.Reverse {
		slices.Reverse(filtered)
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

// filterByOperations filters entries by operation types.
func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(op)] = true
	}
	return filterEntries(entries, func(e audit.Entry) bool { return opSet[strings.ToLower(e.Operation)] })
}

func filterEntries(entries []audit.Entry, keep func(audit.Entry) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

// FormatDate formats a timestamp string to YYYY-MM-DD format.
func FormatDate(ts string) string {
	t, ok := audit.ParseTimestamp(ts)
	if !ok {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return t.Format("2006-01-02")
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, ok := audit.ParseTimestamp(ts)
	if !ok {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails formats the details for a log entry in verbose format.
func FormatDetails(e audit.Entry) string {
	var details string
	switch e.Operation {
	case audit.OpPack:
		details = strings.TrimSpace(e.OriginalName + " -> " + e.ArchiveName)
		if e.ArchiveName != "" && !e.RemoteStored {
			details += " (local only)"
		}
	case audit.OpUnpack, audit.OpLookup:
		details = e.ArchiveName
		if details == "" {
			details = ui.ShortFingerprint(e.Fingerprint)
		}
		if e.Source != "" {
			details += " from " + e.Source
		}
	case audit.OpSync:
		details = fmt.Sprintf("%s, %d added", e.Direction, e.AddedCount)
	case audit.OpGenerate:
		details = fmt.Sprintf("%d generated", e.AddedCount)
	case audit.OpEvent:
		details = strings.TrimSpace(e.Event + " " + e.Detail)
	}

	if e.Error != "" {
		if details != "" {
			details += ": "
		}
		details += e.Error
	}
	return details
}

// FormatDetailsOneline formats the details for a log entry in oneline format.
func FormatDetailsOneline(e audit.Entry) string {
	switch e.Operation {
	case audit.OpPack, audit.OpUnpack, audit.OpLookup:
		if e.Error != "" {
			return "failed"
		}
		return e.ArchiveName
	case audit.OpSync:
		return fmt.Sprintf("%s +%d", e.Direction, e.AddedCount)
	case audit.OpEvent:
		return e.Event
	default:
		return ""
	}
}

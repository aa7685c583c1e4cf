package catalog

import (
	"fmt"
	"time"
)

// EventKind names a degraded-mode transition.
type EventKind string

const (
	// EventRemoteUnavailable: a remote read failed and an empty sequence was used instead.
	EventRemoteUnavailable EventKind = "remote_unavailable"
	// EventRemoteWriteFailed: a remote overwrite was rejected or did not complete.
	EventRemoteWriteFailed EventKind = "remote_write_failed"
	// EventRemoteWriteSkipped: a record was stored locally only because the remote could not be read.
	EventRemoteWriteSkipped EventKind = "remote_write_skipped"
	// EventRemoteReplaced: a malformed remote catalog was treated as empty and overwritten.
	EventRemoteReplaced EventKind = "remote_replaced"
	// EventLocalCorrupt: the local catalog file could not be read or parsed.
	EventLocalCorrupt EventKind = "local_corrupt"
	// EventLocalQuarantined: an unreadable local catalog was moved aside before being overwritten.
	EventLocalQuarantined EventKind = "local_quarantined"
	// EventLocalFallback: a lookup was answered from the local catalog because the remote failed.
	EventLocalFallback EventKind = "local_fallback"
)

// Event describes one degraded-mode transition.
type Event struct {
	Kind EventKind
	Time time.Time
	// Path is the file or document involved, if any.
	Path string
	// Detail carries extra context such as the quarantine file name.
	Detail string
	Err    error
}

func (e Event) String() string {
	msg := string(e.Kind)
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Reporter receives degraded-mode events. Implementations must not block for long.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Event)

// Report calls f(e).
func (f ReporterFunc) Report(e Event) { f(e) }

// Reporters fans an event out to every member.
type Reporters []Reporter

// Report delivers e to each non-nil reporter in order.
func (rs Reporters) Report(e Event) {
	for _, r := range rs {
		if r != nil {
			r.Report(e)
		}
	}
}

// Discard drops every event.
var Discard Reporter = ReporterFunc(func(Event) {})

func report(r Reporter, e Event) {
	if r == nil {
		return
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	r.Report(e)
}

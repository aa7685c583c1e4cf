package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"

	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
)

// RemoteCatalog is the remote half of the catalog. See RemoteStore.
type RemoteCatalog interface {
	FetchAll(ctx context.Context) ([]Record, error)
	ReplaceAll(ctx context.Context, records []Record) error
}

// LocalCatalog is the local half of the catalog. See LocalStore.
type LocalCatalog interface {
	LoadAll() []Record
	AppendAndSave(records ...Record) error
}

// Source says which store answered a lookup.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Synchronizer writes records to both stores and answers lookups from
// either. It holds no state between calls; every operation re-reads.
type Synchronizer struct {
	remote   RemoteCatalog
	local    LocalCatalog
	locker   Locker
	reporter Reporter
}

// Option customizes a Synchronizer.
type Option func(*Synchronizer)

// WithLocker serializes Record and Sync through l.
func WithLocker(l Locker) Option {
	return func(s *Synchronizer) { s.locker = l }
}

// WithReporter delivers the synchronizer's own events to r.
func WithReporter(r Reporter) Option {
	return func(s *Synchronizer) { s.reporter = r }
}

// NewSynchronizer coordinates remote and local. Without WithLocker no locking is done.
func NewSynchronizer(remote RemoteCatalog, local LocalCatalog, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		remote:   remote,
		local:    local,
		locker:   NoLock{},
		reporter: Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordResult describes where a record ended up.
type RecordResult struct {
	// RemoteStored is true when the remote overwrite succeeded.
	RemoteStored bool
	// RemoteErr is the failure that kept the record off the remote, if any.
	RemoteErr error
}

// Record stores r in both catalogs.
//
// The remote snapshot is fetched, r appended and the whole sequence
// written back. When the remote cannot be reached the remote write is
// skipped. A remote that answers with a malformed document is treated as
// empty and overwritten with r; this also creates the catalog file in a
// document that does not have one yet.
// Remote failures land in the result; only a failed local save is returned
// as an error, so a nil error means r is on disk.
func (s *Synchronizer) Record(ctx context.Context, r Record) (*RecordResult, error) {
	unlock, err := s.locker.Lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	result := &RecordResult{}

	snapshot, err := s.remote.FetchAll(ctx)
	switch {
	case err == nil:
		s.writeRemote(ctx, result, append(slices.Clone(snapshot), r))
	case errors.Is(err, kerrors.ErrParse):
		report(s.reporter, Event{Kind: EventRemoteReplaced, Detail: r.ArchiveName, Err: err})
		s.writeRemote(ctx, result, []Record{r})
		if result.RemoteStored {
			result.RemoteErr = err
		}
	default:
		result.RemoteErr = err
		if !errors.Is(err, kerrors.ErrRemoteNotConfigured) {
			report(s.reporter, Event{Kind: EventRemoteWriteSkipped, Detail: r.ArchiveName, Err: err})
		}
	}

	// Appended to the local sequence as it stands, not to the remote snapshot.
	if err := s.local.AppendAndSave(r); err != nil {
		return result, fmt.Errorf("saving record locally: %w", err)
	}

	return result, nil
}

func (s *Synchronizer) writeRemote(ctx context.Context, result *RecordResult, records []Record) {
	if err := s.remote.ReplaceAll(ctx, records); err != nil {
		result.RemoteErr = err
		return
	}
	result.RemoteStored = true
}

// LookupResult is the outcome of a lookup. Record is nil when nothing matched.
type LookupResult struct {
	Record *Record
	Source Source
	// RemoteErr is set when the remote could not be read and the answer, if any, came from the local catalog.
	RemoteErr error
}

// Found reports whether a record matched.
func (r LookupResult) Found() bool {
	return r.Record != nil
}

// Lookup finds the first record whose fingerprint equals one of keys,
// trying keys in order within each store. The remote is searched first,
// then the local catalog. Not finding anything is not an error.
func (s *Synchronizer) Lookup(ctx context.Context, keys ...string) LookupResult {
	remote, remoteErr := s.remote.FetchAll(ctx)
	if remoteErr == nil {
		if rec := find(remote, keys); rec != nil {
			return LookupResult{Record: rec, Source: SourceRemote}
		}
	}

	result := LookupResult{RemoteErr: remoteErr}
	if rec := find(s.local.LoadAll(), keys); rec != nil {
		result.Record = rec
		result.Source = SourceLocal
		if remoteErr != nil && !errors.Is(remoteErr, kerrors.ErrRemoteNotConfigured) {
			report(s.reporter, Event{Kind: EventLocalFallback, Detail: rec.ArchiveName, Err: remoteErr})
		}
	}
	return result
}

// ListResult holds both sequences and their union.
type ListResult struct {
	Remote []Record
	Local  []Record
	// Merged is the remote sequence followed by local records the remote lacks.
	Merged    []Record
	RemoteErr error
}

// List reads both catalogs.
func (s *Synchronizer) List(ctx context.Context) ListResult {
	remote, remoteErr := s.remote.FetchAll(ctx)
	local := s.local.LoadAll()

	merged := append(slices.Clone(remote), missingFrom(remote, local)...)
	return ListResult{
		Remote:    remote,
		Local:     local,
		Merged:    merged,
		RemoteErr: remoteErr,
	}
}

// SyncDirection selects which store receives missing records.
type SyncDirection string

const (
	// SyncPush copies local-only records to the remote.
	SyncPush SyncDirection = "push"
	// SyncPull copies remote-only records to the local catalog.
	SyncPull SyncDirection = "pull"
)

// SyncResult reports what a Sync copied.
type SyncResult struct {
	Direction   SyncDirection
	Added       []Record
	RemoteCount int
	LocalCount  int
}

// Sync copies records present in one store but missing from the other.
// Existing records are never reordered or dropped. Both directions fail
// when the remote cannot be reached. A push over a malformed remote treats
// it as empty; a pull from one fails.
func (s *Synchronizer) Sync(ctx context.Context, dir SyncDirection) (*SyncResult, error) {
	if dir != SyncPush && dir != SyncPull {
		return nil, fmt.Errorf("unknown sync direction %q", dir)
	}

	unlock, err := s.locker.Lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	remote, err := s.remote.FetchAll(ctx)
	replacing := dir == SyncPush && errors.Is(err, kerrors.ErrParse)
	if err != nil && !replacing {
		return nil, fmt.Errorf("reading remote catalog: %w", err)
	}
	local := s.local.LoadAll()

	result := &SyncResult{Direction: dir, RemoteCount: len(remote), LocalCount: len(local)}

	switch dir {
	case SyncPush:
		result.Added = missingFrom(remote, local)
		if len(result.Added) == 0 {
			return result, nil
		}
		if replacing {
			report(s.reporter, Event{Kind: EventRemoteReplaced, Err: err})
		}
		if err := s.remote.ReplaceAll(ctx, append(slices.Clone(remote), result.Added...)); err != nil {
			return nil, fmt.Errorf("writing remote catalog: %w", err)
		}
		result.RemoteCount += len(result.Added)
	case SyncPull:
		result.Added = missingFrom(local, remote)
		if len(result.Added) == 0 {
			return result, nil
		}
		if err := s.local.AppendAndSave(result.Added...); err != nil {
			return nil, fmt.Errorf("writing local catalog: %w", err)
		}
		result.LocalCount += len(result.Added)
	}

	return result, nil
}

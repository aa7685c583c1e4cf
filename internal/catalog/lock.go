package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
	"github.com/google/uuid"
)

const (
	// DefaultLockTimeout is how long Lock waits for another writer to finish.
	DefaultLockTimeout = 10 * time.Second
	// DefaultLockStaleAfter is the age at which an abandoned lock file is broken.
	DefaultLockStaleAfter = 2 * time.Minute

	lockPollInterval = 50 * time.Millisecond
)

// Locker serializes writers. Lock blocks until the lock is held and
// returns the function that releases it.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// NoLock is a Locker that never blocks.
type NoLock struct{}

// Lock returns immediately.
func (NoLock) Lock(context.Context) (func(), error) { return func() {}, nil }

// FileLock is a named lock file created with O_EXCL. It excludes other
// processes using the same path on this machine; it does nothing for
// writers elsewhere that share the remote document.
type FileLock struct {
	Path string
	// Timeout bounds the wait. Zero means DefaultLockTimeout.
	Timeout time.Duration
	// StaleAfter is the age past which a lock file is assumed abandoned. Zero means DefaultLockStaleAfter.
	StaleAfter time.Duration
}

// NewFileLock returns a lock at path with default timings.
func NewFileLock(path string) *FileLock {
	return &FileLock{Path: path}
}

// Lock creates the lock file, waiting while another holder has it.
// It fails with ErrLocked if the timeout passes first.
func (l *FileLock) Lock(ctx context.Context) (func(), error) {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	staleAfter := l.StaleAfter
	if staleAfter <= 0 {
		staleAfter = DefaultLockStaleAfter
	}

	if err := os.MkdirAll(filepath.Dir(l.Path), 0700); err != nil {
		return nil, fmt.Errorf("%w: creating lock directory: %v", kerrors.ErrIO, err)
	}

	token := uuid.NewString()
	deadline := time.Now().Add(timeout)
	for {
		f, err := os.OpenFile(l.Path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d %s %s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339), token)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(l.Path)
				return nil, fmt.Errorf("%w: writing lock %s: %v", kerrors.ErrIO, l.Path, errors.Join(werr, cerr))
			}
			return func() { releaseOwned(l.Path, token) }, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: creating lock %s: %v", kerrors.ErrIO, l.Path, err)
		}

		if holder, ok := staleToken(l.Path, staleAfter); ok && releaseOwned(l.Path, holder) {
			continue
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s held for more than %s", kerrors.ErrLocked, l.Path, timeout)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", kerrors.ErrLocked, ctx.Err())
		case <-time.After(lockPollInterval):
		}
	}
}

// staleToken returns the holder token of the lock at path when the lock is
// older than staleAfter. Files written before tokens existed yield their
// whole content as the token.
func staleToken(path string, staleAfter time.Duration) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) <= staleAfter {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return lockToken(data), true
}

func lockToken(data []byte) string {
	fields := strings.Fields(string(data))
	if len(fields) == 3 {
		return fields[2]
	}
	return strings.TrimSpace(string(data))
}

// releaseOwned removes the lock at path only if it still carries token.
// The file is first renamed aside, which is atomic, and checked there; a
// lock that turns out to belong to someone else is linked back in place.
// Link fails if a new lock appeared meanwhile, so no live lock is clobbered.
// It reports whether the lock was removed.
func releaseOwned(path, token string) bool {
	aside := fmt.Sprintf("%s.release-%s", path, uuid.NewString())
	if err := os.Rename(path, aside); err != nil {
		return false
	}
	defer os.Remove(aside)

	data, err := os.ReadFile(aside)
	if err != nil || lockToken(data) != token {
		_ = os.Link(aside, path)
		return false
	}
	return true
}

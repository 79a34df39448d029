package store

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// FileLock is the cross-process locking seam used by the JSON file
// adapter. Tests substitute a fake to exercise lock failures.
type FileLock interface {
	// TryLockContext attempts to acquire an exclusive lock, retrying at
	// the given interval until the context is done.
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)

	// Unlock releases the lock.
	Unlock() error
}

// FileLockFactory creates FileLock instances for a lock file path.
type FileLockFactory interface {
	New(path string) FileLock
}

// flockWrapper adapts github.com/gofrs/flock to the FileLock interface.
type flockWrapper struct {
	flock *flock.Flock
}

func (f *flockWrapper) TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error) {
	return f.flock.TryLockContext(ctx, retryInterval)
}

func (f *flockWrapper) Unlock() error {
	return f.flock.Unlock()
}

// FlockFactory is the default FileLockFactory, backed by flock.
type FlockFactory struct{}

// New implements FileLockFactory.New.
func (f *FlockFactory) New(path string) FileLock {
	return &flockWrapper{flock: flock.New(path)}
}

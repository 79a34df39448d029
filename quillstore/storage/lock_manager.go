package storage

import "sync"

// OperationType distinguishes reads from writes so the LockManager can
// pick the appropriate lock.
type OperationType int

const (
	// ReadOperation only reads data; reads may proceed concurrently.
	ReadOperation OperationType = iota

	// WriteOperation modifies data and is exclusive.
	WriteOperation
)

// LockManager centralizes the locking strategy for adapter operations.
// Routing every operation through Execute keeps the read/write lock
// choice in one place instead of scattered lock/unlock pairs. It is the
// only in-process concurrency control an adapter has: it serializes
// access but provides no transaction isolation, so racing writers to the
// same key resolve as last-write-wins.
type LockManager struct {
	mu *sync.RWMutex
}

// NewLockManager creates a ready-to-use lock manager.
func NewLockManager() *LockManager {
	return &LockManager{mu: &sync.RWMutex{}}
}

// Execute runs fn under the lock matching opType. Read operations share
// an RLock; write operations take the exclusive lock. The lock is
// released when fn returns, including on panic.
func (lm *LockManager) Execute(opType OperationType, fn func() error) error {
	switch opType {
	case ReadOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case WriteOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}

// ExecuteWithResult is Execute for functions that also return a value.
// The caller type-asserts the result.
func (lm *LockManager) ExecuteWithResult(opType OperationType, fn func() (interface{}, error)) (interface{}, error) {
	switch opType {
	case ReadOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case WriteOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}

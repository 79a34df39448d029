package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/quillbase/quillstore/quillstore/storage"
	"github.com/quillbase/quillstore/types"
)

// Constants for file locking.
const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// jsonFileAdapter persists the in-memory state to a single JSON file.
// Every write rewrites the whole file atomically (temp file + rename)
// while holding a cross-process flock, so concurrent processes sharing
// the file see a consistent snapshot or nothing.
type jsonFileAdapter struct {
	mem         *memoryAdapter
	filePath    string
	fs          FileSystem
	lockFactory FileLockFactory
	fileLock    FileLock
}

// NewJSONFile creates a file-backed adapter, loading any existing data
// at path. A missing or empty file starts the store empty.
func NewJSONFile(path string, opts ...JSONFileOption) (types.Adapter, error) {
	a := &jsonFileAdapter{
		mem:      NewMemory().(*memoryAdapter),
		filePath: path,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.fs == nil {
		a.fs = OSFileSystem{}
	}
	if a.lockFactory == nil {
		a.lockFactory = &FlockFactory{}
	}
	a.fileLock = a.lockFactory.New(path + ".lock")

	if err := a.loadWithLock(); err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	return a, nil
}

// acquireLock attempts to take the exclusive file lock with retries.
func (a *jsonFileAdapter) acquireLock(ctx context.Context) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := a.fileLock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
	return fmt.Errorf("failed to acquire lock after %d attempts", lockMaxRetries)
}

func (a *jsonFileAdapter) releaseLock() error {
	return a.fileLock.Unlock()
}

// loadWithLock reads the data file while holding the file lock.
func (a *jsonFileAdapter) loadWithLock() error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	if err := a.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = a.releaseLock() }()

	return a.load()
}

// load reads the JSON file into the in-memory state. Caller holds the
// file lock.
func (a *jsonFileAdapter) load() error {
	if _, err := a.fs.Stat(a.filePath); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	raw, err := a.fs.ReadFile(a.filePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}

	var data storage.StoreData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	collections := make(map[string]*collectionState, len(data.Collections))
	for _, schema := range data.Collections {
		col := &collectionState{schema: schema}
		for _, rawDoc := range data.Documents[schema.Name] {
			doc, err := types.NewDocument(rawDoc)
			if err != nil {
				return fmt.Errorf("collection %q: %w", schema.Name, err)
			}
			col.docs = append(col.docs, doc)
		}
		collections[schema.Name] = col
	}
	a.mem.collections = collections
	return nil
}

// saveWithLock snapshots the in-memory state and writes it to the file
// atomically while holding the file lock.
func (a *jsonFileAdapter) saveWithLock() error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	if err := a.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = a.releaseLock() }()

	return a.save()
}

// save exports the state and writes it through a temp file + rename.
func (a *jsonFileAdapter) save() error {
	data := storage.NewStoreData()

	err := a.mem.lockManager.Execute(storage.ReadOperation, func() error {
		names := make([]string, 0, len(a.mem.collections))
		for name := range a.mem.collections {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			col := a.mem.collections[name]
			data.Collections = append(data.Collections, col.schema)
			exported := make([]map[string]interface{}, len(col.docs))
			for i, doc := range col.docs {
				exported[i] = doc.ToMap()
			}
			data.Documents[name] = exported
		}
		return nil
	})
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	tmpFile := a.filePath + ".tmp"
	if err := a.fs.WriteFile(tmpFile, raw, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := a.fs.Rename(tmpFile, a.filePath); err != nil {
		_ = a.fs.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// CreateCollection registers the schema and persists.
func (a *jsonFileAdapter) CreateCollection(ctx context.Context, collection types.Collection) error {
	if err := a.mem.CreateCollection(ctx, collection); err != nil {
		return err
	}
	if err := a.saveWithLock(); err != nil {
		_ = a.mem.DeleteCollection(ctx, collection.Name)
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

// DeleteCollection removes the collection and persists.
func (a *jsonFileAdapter) DeleteCollection(ctx context.Context, name string) error {
	if err := a.mem.DeleteCollection(ctx, name); err != nil {
		return err
	}
	if err := a.saveWithLock(); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

// ListCollections delegates to the in-memory state.
func (a *jsonFileAdapter) ListCollections(ctx context.Context) ([]types.Collection, error) {
	return a.mem.ListCollections(ctx)
}

// CreateDocument stores the document and persists, undoing the insert
// when the save fails.
func (a *jsonFileAdapter) CreateDocument(ctx context.Context, collection string, doc *types.Document) (*types.Document, error) {
	created, err := a.mem.CreateDocument(ctx, collection, doc)
	if err != nil {
		return nil, err
	}
	if err := a.saveWithLock(); err != nil {
		_, _ = a.mem.DeleteDocument(ctx, collection, created.GetID())
		return nil, fmt.Errorf("failed to save: %w", err)
	}
	return created, nil
}

// UpdateDocument replaces the stored document and persists.
func (a *jsonFileAdapter) UpdateDocument(ctx context.Context, collection string, doc *types.Document) (*types.Document, error) {
	updated, err := a.mem.UpdateDocument(ctx, collection, doc)
	if err != nil {
		return nil, err
	}
	if err := a.saveWithLock(); err != nil {
		return nil, fmt.Errorf("failed to save: %w", err)
	}
	return updated, nil
}

// DeleteDocument removes the document and persists when it existed.
func (a *jsonFileAdapter) DeleteDocument(ctx context.Context, collection string, id string) (bool, error) {
	deleted, err := a.mem.DeleteDocument(ctx, collection, id)
	if err != nil || !deleted {
		return deleted, err
	}
	if err := a.saveWithLock(); err != nil {
		return false, fmt.Errorf("failed to save: %w", err)
	}
	return true, nil
}

// GetDocument delegates to the in-memory state.
func (a *jsonFileAdapter) GetDocument(ctx context.Context, collection string, id string) (*types.Document, error) {
	return a.mem.GetDocument(ctx, collection, id)
}

// ListDocuments delegates to the in-memory state.
func (a *jsonFileAdapter) ListDocuments(ctx context.Context, collection string, queries []*types.Query) ([]*types.Document, error) {
	return a.mem.ListDocuments(ctx, collection, queries)
}

// Close removes the lock file. Data is saved on each operation, so
// there is nothing to flush.
func (a *jsonFileAdapter) Close() error {
	_ = a.fs.Remove(a.filePath + ".lock")
	return nil
}

package store

import (
	"context"
	"fmt"

	"github.com/quillbase/quillstore/internal/validation"
	"github.com/quillbase/quillstore/quillstore/query"
	"github.com/quillbase/quillstore/quillstore/storage"
	"github.com/quillbase/quillstore/types"
)

// memoryAdapter is the in-memory reference backend. All state lives in
// the process; nothing survives a restart. Cloning on every read and
// write is the only isolation it offers: callers never alias internal
// state, but concurrent writers to the same id race last-write-wins.
type memoryAdapter struct {
	lockManager *storage.LockManager
	queryProc   query.Processor
	collections map[string]*collectionState
}

// NewMemory creates an empty in-memory adapter.
func NewMemory() types.Adapter {
	return &memoryAdapter{
		lockManager: storage.NewLockManager(),
		queryProc:   query.NewProcessor(),
		collections: make(map[string]*collectionState),
	}
}

// CreateCollection registers a new collection schema.
func (a *memoryAdapter) CreateCollection(_ context.Context, collection types.Collection) error {
	if err := validation.ValidateCollection(collection); err != nil {
		return err
	}
	return a.lockManager.Execute(storage.WriteOperation, func() error {
		if _, exists := a.collections[collection.Name]; exists {
			return fmt.Errorf("collection %q: %w", collection.Name, types.ErrCollectionExists)
		}
		a.collections[collection.Name] = &collectionState{schema: collection}
		return nil
	})
}

// DeleteCollection removes a collection and its documents.
func (a *memoryAdapter) DeleteCollection(_ context.Context, name string) error {
	return a.lockManager.Execute(storage.WriteOperation, func() error {
		if _, exists := a.collections[name]; !exists {
			return errUnknownCollection(name)
		}
		delete(a.collections, name)
		return nil
	})
}

// ListCollections returns all registered schemas.
func (a *memoryAdapter) ListCollections(_ context.Context) ([]types.Collection, error) {
	result, err := a.lockManager.ExecuteWithResult(storage.ReadOperation, func() (interface{}, error) {
		schemas := make([]types.Collection, 0, len(a.collections))
		for _, col := range a.collections {
			schemas = append(schemas, col.schema)
		}
		return schemas, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]types.Collection), nil
}

// CreateDocument stores a clone of doc and returns another clone.
func (a *memoryAdapter) CreateDocument(_ context.Context, collection string, doc *types.Document) (*types.Document, error) {
	if doc.GetID() == "" {
		return nil, fmt.Errorf("create document: %w", types.ErrMissingID)
	}
	result, err := a.lockManager.ExecuteWithResult(storage.WriteOperation, func() (interface{}, error) {
		col, exists := a.collections[collection]
		if !exists {
			return nil, errUnknownCollection(collection)
		}
		if col.findDoc(doc.GetID()) >= 0 {
			return nil, fmt.Errorf("document %q: %w", doc.GetID(), types.ErrDocumentExists)
		}
		col.docs = append(col.docs, doc.Clone())
		return doc.Clone(), nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*types.Document), nil
}

// UpdateDocument replaces the stored document with the same id, keeping
// its insertion position.
func (a *memoryAdapter) UpdateDocument(_ context.Context, collection string, doc *types.Document) (*types.Document, error) {
	if doc.GetID() == "" {
		return nil, fmt.Errorf("update document: %w", types.ErrMissingID)
	}
	result, err := a.lockManager.ExecuteWithResult(storage.WriteOperation, func() (interface{}, error) {
		col, exists := a.collections[collection]
		if !exists {
			return nil, errUnknownCollection(collection)
		}
		idx := col.findDoc(doc.GetID())
		if idx < 0 {
			return nil, fmt.Errorf("document %q: %w", doc.GetID(), types.ErrDocumentNotFound)
		}
		col.docs[idx] = doc.Clone()
		return doc.Clone(), nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*types.Document), nil
}

// DeleteDocument removes a document by id, reporting whether it existed.
func (a *memoryAdapter) DeleteDocument(_ context.Context, collection string, id string) (bool, error) {
	result, err := a.lockManager.ExecuteWithResult(storage.WriteOperation, func() (interface{}, error) {
		col, exists := a.collections[collection]
		if !exists {
			return false, errUnknownCollection(collection)
		}
		idx := col.findDoc(id)
		if idx < 0 {
			return false, nil
		}
		col.docs = append(col.docs[:idx], col.docs[idx+1:]...)
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

// GetDocument retrieves a clone of the document, or nil when absent.
func (a *memoryAdapter) GetDocument(_ context.Context, collection string, id string) (*types.Document, error) {
	result, err := a.lockManager.ExecuteWithResult(storage.ReadOperation, func() (interface{}, error) {
		col, exists := a.collections[collection]
		if !exists {
			return nil, errUnknownCollection(collection)
		}
		idx := col.findDoc(id)
		if idx < 0 {
			return (*types.Document)(nil), nil
		}
		return col.docs[idx].Clone(), nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*types.Document), nil
}

// ListDocuments runs the query pipeline over the collection's documents.
func (a *memoryAdapter) ListDocuments(_ context.Context, collection string, queries []*types.Query) ([]*types.Document, error) {
	result, err := a.lockManager.ExecuteWithResult(storage.ReadOperation, func() (interface{}, error) {
		col, exists := a.collections[collection]
		if !exists {
			return nil, errUnknownCollection(collection)
		}
		return a.queryProc.Execute(col.docs, queries)
	})
	if err != nil {
		return nil, err
	}
	return result.([]*types.Document), nil
}

// Close is a no-op for the in-memory adapter.
func (a *memoryAdapter) Close() error {
	return nil
}

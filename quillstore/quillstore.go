// Package quillstore is the public entry point of the document store.
// A Database wraps a storage adapter, stamping identity and timestamp
// metadata on writes and delegating everything else. The semantics live
// in the types and query packages; the Database itself is thin plumbing.
package quillstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quillbase/quillstore/types"
)

// Database is the façade callers use to work with collections and
// documents. It is safe for concurrent use to the extent the underlying
// adapter is.
type Database struct {
	adapter  types.Adapter
	timeFunc func() time.Time
	idFunc   func() string
}

// Option modifies a Database's configuration.
type Option func(*Database)

// WithTimeFunc sets a custom clock, used for deterministic timestamps
// in tests.
func WithTimeFunc(fn func() time.Time) Option {
	return func(db *Database) {
		db.timeFunc = fn
	}
}

// WithIDFunc sets a custom id generator. Any unique-string generator
// suffices; the default is a random UUID.
func WithIDFunc(fn func() string) Option {
	return func(db *Database) {
		db.idFunc = fn
	}
}

// New creates a Database over the given adapter.
func New(adapter types.Adapter, opts ...Option) *Database {
	db := &Database{
		adapter:  adapter,
		timeFunc: time.Now,
		idFunc:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// now returns the current timestamp in the stored ISO-8601 form.
func (db *Database) now() string {
	return db.timeFunc().UTC().Format(time.RFC3339)
}

// CreateCollection registers a new collection schema.
func (db *Database) CreateCollection(ctx context.Context, collection types.Collection) error {
	return db.adapter.CreateCollection(ctx, collection)
}

// DeleteCollection removes a collection and all its documents.
func (db *Database) DeleteCollection(ctx context.Context, name string) error {
	return db.adapter.DeleteCollection(ctx, name)
}

// ListCollections returns all registered collection schemas.
func (db *Database) ListCollections(ctx context.Context) ([]types.Collection, error) {
	return db.adapter.ListCollections(ctx)
}

// CreateDocument stores doc in the collection. The caller's document is
// not mutated: a clone is stamped with a generated $id (when absent),
// the owning collection, and creation/update timestamps.
func (db *Database) CreateDocument(ctx context.Context, collection string, doc *types.Document) (*types.Document, error) {
	stamped := doc.Clone()
	if stamped.GetID() == "" {
		if err := stamped.SetAttribute(types.KeyID, db.idFunc()); err != nil {
			return nil, err
		}
	}
	now := db.now()
	if err := stamped.SetAttribute(types.KeyCollection, collection); err != nil {
		return nil, err
	}
	if stamped.GetCreatedAt() == "" {
		if err := stamped.SetAttribute(types.KeyCreatedAt, now); err != nil {
			return nil, err
		}
	}
	if err := stamped.SetAttribute(types.KeyUpdatedAt, now); err != nil {
		return nil, err
	}
	return db.adapter.CreateDocument(ctx, collection, stamped)
}

// UpdateDocument replaces the stored document carrying doc's $id,
// refreshing the update timestamp.
func (db *Database) UpdateDocument(ctx context.Context, collection string, doc *types.Document) (*types.Document, error) {
	if doc.GetID() == "" {
		return nil, fmt.Errorf("update document: %w", types.ErrMissingID)
	}
	stamped := doc.Clone()
	if err := stamped.SetAttribute(types.KeyCollection, collection); err != nil {
		return nil, err
	}
	if err := stamped.SetAttribute(types.KeyUpdatedAt, db.now()); err != nil {
		return nil, err
	}
	return db.adapter.UpdateDocument(ctx, collection, stamped)
}

// DeleteDocument removes a document by id, reporting whether it existed.
func (db *Database) DeleteDocument(ctx context.Context, collection string, id string) (bool, error) {
	return db.adapter.DeleteDocument(ctx, collection, id)
}

// GetDocument retrieves a document by id, returning nil when absent.
func (db *Database) GetDocument(ctx context.Context, collection string, id string) (*types.Document, error) {
	return db.adapter.GetDocument(ctx, collection, id)
}

// ListDocuments evaluates the queries against the collection and
// returns the result set.
func (db *Database) ListDocuments(ctx context.Context, collection string, queries ...*types.Query) ([]*types.Document, error) {
	return db.adapter.ListDocuments(ctx, collection, queries)
}

// Close releases the underlying adapter's resources.
func (db *Database) Close() error {
	return db.adapter.Close()
}

package types

import "context"

// Adapter is the seam between the public façade and a storage backend.
// The in-process adapters never suspend mid-operation; the context
// parameter exists so out-of-process backends can honor cancellation.
//
// Implementations must clone documents at the boundary on both reads and
// writes: a caller must never observe or mutate internal storage state
// through a returned document.
type Adapter interface {
	// CreateCollection registers a new collection schema.
	CreateCollection(ctx context.Context, collection Collection) error

	// DeleteCollection removes a collection and all its documents.
	DeleteCollection(ctx context.Context, name string) error

	// ListCollections returns all registered collection schemas.
	ListCollections(ctx context.Context) ([]Collection, error)

	// CreateDocument stores a new document. The document must carry an
	// id; storing a duplicate id fails.
	CreateDocument(ctx context.Context, collection string, doc *Document) (*Document, error)

	// UpdateDocument replaces the stored document with the same id.
	// Updating an id that does not exist fails.
	UpdateDocument(ctx context.Context, collection string, doc *Document) (*Document, error)

	// DeleteDocument removes a document by id, reporting whether it
	// existed.
	DeleteDocument(ctx context.Context, collection string, id string) (bool, error)

	// GetDocument retrieves a document by id, returning nil when absent.
	GetDocument(ctx context.Context, collection string, id string) (*Document, error)

	// ListDocuments evaluates queries against the collection's documents
	// and returns the filtered, ordered, paginated, projected results.
	ListDocuments(ctx context.Context, collection string, queries []*Query) ([]*Document, error)

	// Close releases any resources held by the adapter.
	Close() error
}

// Package store contains the concrete storage backends for quillstore:
// an in-memory reference adapter and a JSON file adapter that persists
// the same state to disk behind a cross-process file lock. Both satisfy
// the types.Adapter contract and share the query execution pipeline.
package store

import (
	"fmt"

	"github.com/quillbase/quillstore/types"
)

// collectionState is one named collection: its declared schema and its
// documents in insertion order. Evaluation depends on that order for
// stable-sort tie breaking, so documents live in a slice, not a map.
type collectionState struct {
	schema types.Collection
	docs   []*types.Document
}

// findDoc returns the index of the document with the given id, or -1.
func (c *collectionState) findDoc(id string) int {
	for i, doc := range c.docs {
		if doc.GetID() == id {
			return i
		}
	}
	return -1
}

// errUnknownCollection wraps the not-found sentinel with the name.
func errUnknownCollection(name string) error {
	return fmt.Errorf("collection %q: %w", name, types.ErrCollectionNotFound)
}

// Package storage provides the persistence primitives shared by the
// quillstore adapters: the on-disk data format for the JSON file backend
// and the lock manager serializing in-process access.
package storage

import (
	"time"

	"github.com/quillbase/quillstore/types"
)

// StoreData is the complete state persisted by the JSON file backend:
// every collection schema, every document (in insertion order, keyed by
// collection name), and file metadata. Documents are stored in their
// exported map form.
type StoreData struct {
	Collections []types.Collection                  `json:"collections"`
	Documents   map[string][]map[string]interface{} `json:"documents"`
	Metadata    Metadata                            `json:"metadata"`
}

// Metadata carries versioning for the file format.
type Metadata struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStoreData returns an empty store data structure.
func NewStoreData() *StoreData {
	now := time.Now()
	return &StoreData{
		Documents: make(map[string][]map[string]interface{}),
		Metadata: Metadata{
			Version:   "1.0",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

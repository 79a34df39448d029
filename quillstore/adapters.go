package quillstore

import (
	"github.com/quillbase/quillstore/quillstore/store"
)

// NewMemory returns a fresh in-memory adapter.
func NewMemory() Adapter {
	return store.NewMemory()
}

// NewJSONFile returns an adapter persisting to a JSON file at path.
func NewJSONFile(path string, opts ...store.JSONFileOption) (Adapter, error) {
	return store.NewJSONFile(path, opts...)
}

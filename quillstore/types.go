package quillstore

import (
	"github.com/quillbase/quillstore/types"
)

// Re-exported types so most callers only import this package.
type (
	Document   = types.Document
	Query      = types.Query
	Collection = types.Collection
	Attribute  = types.Attribute
	Permission = types.Permission
	Adapter    = types.Adapter
)

// Reserved document keys.
const (
	KeyID          = types.KeyID
	KeyCollection  = types.KeyCollection
	KeyCreatedAt   = types.KeyCreatedAt
	KeyUpdatedAt   = types.KeyUpdatedAt
	KeyPermissions = types.KeyPermissions
	KeyTenant      = types.KeyTenant
	KeySequence    = types.KeySequence
)

// NewDocument wraps types.NewDocument.
func NewDocument(data map[string]interface{}) (*Document, error) {
	return types.NewDocument(data)
}

// ParseQuery wraps types.ParseQuery.
func ParseQuery(raw string) (*Query, error) {
	return types.ParseQuery(raw)
}

// ParseQueries wraps types.ParseQueries.
func ParseQueries(raw string) ([]*Query, error) {
	return types.ParseQueries(raw)
}

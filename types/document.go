// Package types defines the core entities of quillstore: the Document
// attribute bag, the serializable Query, collection schemas, and the
// Adapter contract that storage backends implement.
package types

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Reserved metadata keys. These are carried on every document but are
// never treated as user attributes.
const (
	KeyID          = "$id"
	KeyCollection  = "$collection"
	KeyCreatedAt   = "$createdAt"
	KeyUpdatedAt   = "$updatedAt"
	KeyPermissions = "$permissions"
	KeyTenant      = "$tenant"
	KeySequence    = "$sequence"
)

var reservedKeys = map[string]struct{}{
	KeyID:          {},
	KeyCollection:  {},
	KeyCreatedAt:   {},
	KeyUpdatedAt:   {},
	KeyPermissions: {},
	KeyTenant:      {},
	KeySequence:    {},
}

// IsReservedKey reports whether key is one of the document metadata keys.
func IsReservedKey(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

// Document is a single stored record: an attribute bag plus reserved
// metadata (id, collection, timestamps, permissions). Values may be
// primitives, slices, plain maps, or nested Documents. Construction and
// every attribute assignment normalize nested structures: any plain map
// carrying $id or $collection becomes a nested *Document, deep-cloned so
// no mutable substructure is ever shared with the caller.
type Document struct {
	data map[string]interface{}
}

// NewDocument builds a document from a raw attribute map. The input is
// deep-copied, nested document-shaped maps are normalized, and the
// reserved keys are validated: $id must be a string, $permissions must
// be a slice (elements are coerced to strings).
func NewDocument(data map[string]interface{}) (*Document, error) {
	doc := &Document{data: make(map[string]interface{}, len(data))}
	for key, value := range data {
		if err := doc.setAttribute(key, value); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// setAttribute validates and normalizes a single assignment.
func (d *Document) setAttribute(key string, value interface{}) error {
	switch key {
	case KeyID:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("attribute %q of type %T: %w", key, value, ErrInvalidID)
		}
	case KeyPermissions:
		perms, err := coercePermissions(value)
		if err != nil {
			return err
		}
		d.data[key] = perms
		return nil
	}
	normalized, err := normalizeValue(value)
	if err != nil {
		return err
	}
	d.data[key] = normalized
	return nil
}

// coercePermissions accepts any slice and coerces its elements to strings.
func coercePermissions(value interface{}) ([]string, error) {
	rv := reflect.ValueOf(value)
	if value == nil || rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("attribute %q of type %T: %w", KeyPermissions, value, ErrInvalidPermissions)
	}
	perms := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		perms[i] = fmt.Sprintf("%v", rv.Index(i).Interface())
	}
	return perms, nil
}

// normalizeValue deep-copies value, converting document-shaped maps into
// nested Documents at any depth. Slices of any element type collapse to
// []interface{} so downstream evaluation sees a uniform shape.
func normalizeValue(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case *Document:
		return v.Clone(), nil
	case Document:
		return v.Clone(), nil
	case map[string]interface{}:
		if isDocumentShaped(v) {
			return NewDocument(v)
		}
		out := make(map[string]interface{}, len(v))
		for key, nested := range v {
			normalized, err := normalizeValue(nested)
			if err != nil {
				return nil, err
			}
			out[key] = normalized
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, nested := range v {
			normalized, err := normalizeValue(nested)
			if err != nil {
				return nil, err
			}
			out[i] = normalized
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
			out := make([]interface{}, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				normalized, err := normalizeValue(rv.Index(i).Interface())
				if err != nil {
					return nil, err
				}
				out[i] = normalized
			}
			return out, nil
		}
		return value, nil
	}
}

// isDocumentShaped reports whether a plain map should be treated as a
// nested document.
func isDocumentShaped(m map[string]interface{}) bool {
	if _, ok := m[KeyID]; ok {
		return true
	}
	_, ok := m[KeyCollection]
	return ok
}

// GetID returns the document id, or "" when unset.
func (d *Document) GetID() string {
	id, _ := d.data[KeyID].(string)
	return id
}

// GetCollection returns the owning collection name, or "" when unset.
func (d *Document) GetCollection() string {
	name, _ := d.data[KeyCollection].(string)
	return name
}

// GetCreatedAt returns the creation timestamp string, or "" when unset.
func (d *Document) GetCreatedAt() string {
	ts, _ := d.data[KeyCreatedAt].(string)
	return ts
}

// GetUpdatedAt returns the last-update timestamp string, or "" when unset.
func (d *Document) GetUpdatedAt() string {
	ts, _ := d.data[KeyUpdatedAt].(string)
	return ts
}

// GetAttribute returns the stored value for key, or the optional default
// when the key is absent. A stored nil is returned as nil, not as the
// default.
func (d *Document) GetAttribute(key string, def ...interface{}) interface{} {
	if value, ok := d.data[key]; ok {
		return value
	}
	if len(def) > 0 {
		return def[0]
	}
	return nil
}

// Has reports whether key is present, even when its value is nil.
func (d *Document) Has(key string) bool {
	_, ok := d.data[key]
	return ok
}

// SetAttribute assigns value to key, re-running normalization and the
// reserved-key validation.
func (d *Document) SetAttribute(key string, value interface{}) error {
	return d.setAttribute(key, value)
}

// RemoveAttribute deletes key from the document.
func (d *Document) RemoveAttribute(key string) {
	delete(d.data, key)
}

// GetAttributes returns all non-reserved key/value pairs.
func (d *Document) GetAttributes() map[string]interface{} {
	attrs := make(map[string]interface{}, len(d.data))
	for key, value := range d.data {
		if IsReservedKey(key) {
			continue
		}
		attrs[key] = value
	}
	return attrs
}

// ToMap exports the document to a plain map, recursively unwrapping
// nested Documents. The result shares no structure with the receiver.
func (d *Document) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, len(d.data))
	for key, value := range d.data {
		out[key] = exportValue(value)
	}
	return out
}

func exportValue(value interface{}) interface{} {
	switch v := value.(type) {
	case *Document:
		return v.ToMap()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, nested := range v {
			out[key] = exportValue(nested)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, nested := range v {
			out[i] = exportValue(nested)
		}
		return out
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	default:
		return value
	}
}

// Clone deep-copies the document by round-tripping through ToMap. The
// export/import round trip is the canonical copy mechanism: it is what
// guarantees callers never share mutable substructure with storage.
func (d *Document) Clone() *Document {
	clone, err := NewDocument(d.ToMap())
	if err != nil {
		// The receiver already passed validation, so re-importing its
		// own export cannot fail.
		panic(fmt.Sprintf("document clone: %v", err))
	}
	return clone
}

// MarshalJSON implements json.Marshaler using the exported map form.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToMap())
}

// UnmarshalJSON implements json.Unmarshaler, running the usual
// construction-time validation and normalization.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	doc, err := NewDocument(raw)
	if err != nil {
		return err
	}
	d.data = doc.data
	return nil
}

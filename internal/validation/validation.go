// Package validation checks collection schemas before they reach an
// adapter. Document values are deliberately not validated against the
// declared attribute types at write time; only the schema's own shape
// is enforced here.
package validation

import (
	"fmt"
	"strings"

	"github.com/quillbase/quillstore/types"
)

var attributeTypes = map[types.AttributeType]struct{}{
	types.AttributeString:  {},
	types.AttributeInteger: {},
	types.AttributeFloat:   {},
	types.AttributeBoolean: {},
}

// ValidateCollectionName rejects empty names and names that would
// collide with the reserved metadata namespace.
func ValidateCollectionName(name string) error {
	if name == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if strings.HasPrefix(name, "$") {
		return fmt.Errorf("collection name %q cannot start with $", name)
	}
	return nil
}

// ValidateCollection checks the schema: a valid name and attribute keys
// that are non-empty, unique, outside the reserved set, and of a known
// declared type.
func ValidateCollection(collection types.Collection) error {
	if err := ValidateCollectionName(collection.Name); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(collection.Attributes))
	for _, attr := range collection.Attributes {
		if attr.Key == "" {
			return fmt.Errorf("collection %q: attribute key cannot be empty", collection.Name)
		}
		if types.IsReservedKey(attr.Key) || strings.HasPrefix(attr.Key, "$") {
			return fmt.Errorf("collection %q: attribute key %q is reserved", collection.Name, attr.Key)
		}
		if _, ok := seen[attr.Key]; ok {
			return fmt.Errorf("collection %q: duplicate attribute key %q", collection.Name, attr.Key)
		}
		seen[attr.Key] = struct{}{}
		if _, ok := attributeTypes[attr.Type]; !ok {
			return fmt.Errorf("collection %q: attribute %q has unknown type %q", collection.Name, attr.Key, attr.Type)
		}
	}
	return nil
}

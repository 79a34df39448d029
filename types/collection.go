package types

// AttributeType enumerates the declared value kinds of a collection
// attribute. Declarations are bookkeeping only: values are not validated
// against them at write time.
type AttributeType string

const (
	AttributeString  AttributeType = "string"
	AttributeInteger AttributeType = "integer"
	AttributeFloat   AttributeType = "float"
	AttributeBoolean AttributeType = "boolean"
)

// Attribute declares a single attribute of a collection schema.
type Attribute struct {
	Key      string        `json:"key"`
	Type     AttributeType `json:"type"`
	Required bool          `json:"required,omitempty"`
	Array    bool          `json:"array,omitempty"`
	Default  interface{}   `json:"default,omitempty"`
}

// Collection is a named grouping of documents sharing a declared schema.
type Collection struct {
	Name       string      `json:"name"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

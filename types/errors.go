package types

import "errors"

// Validation errors surface at the point of construction or assignment,
// never deferred to evaluation.
var (
	// ErrInvalidID is returned when $id is present but not a string.
	ErrInvalidID = errors.New("$id must be a string")

	// ErrMissingID is returned by adapters handed a document without an id.
	ErrMissingID = errors.New("document is missing $id")

	// ErrInvalidPermissions is returned when $permissions is not a list.
	ErrInvalidPermissions = errors.New("$permissions must be a list")

	// ErrInvalidPermission is returned for strings outside the
	// "type(value)" grammar.
	ErrInvalidPermission = errors.New("invalid permission string")

	// ErrInvalidQueryMethod is returned for unrecognized query operators.
	ErrInvalidQueryMethod = errors.New("invalid query method")

	// ErrInvalidQueryValue is returned when a logical query operand is
	// neither a query nor a query-shaped object.
	ErrInvalidQueryValue = errors.New("invalid query value")
)

// Not-found errors fail the specific call without corrupting state.
var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrCollectionExists   = errors.New("collection already exists")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrDocumentExists     = errors.New("document already exists")
)

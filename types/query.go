package types

import (
	"encoding/json"
	"fmt"
)

// Query methods. The exact strings double as the JSON wire enum.
const (
	MethodEqual            = "equal"
	MethodNotEqual         = "notEqual"
	MethodLessThan         = "lessThan"
	MethodLessThanEqual    = "lessThanEqual"
	MethodGreaterThan      = "greaterThan"
	MethodGreaterThanEqual = "greaterThanEqual"
	MethodContains         = "contains"
	MethodNotContains      = "notContains"
	MethodSearch           = "search"
	MethodNotSearch        = "notSearch"
	MethodIsNull           = "isNull"
	MethodIsNotNull        = "isNotNull"
	MethodBetween          = "between"
	MethodStartsWith       = "startsWith"
	MethodNotStartsWith    = "notStartsWith"
	MethodEndsWith         = "endsWith"
	MethodNotEndsWith      = "notEndsWith"
	MethodLimit            = "limit"
	MethodOffset           = "offset"
	MethodOrderAsc         = "orderAsc"
	MethodOrderDesc        = "orderDesc"
	MethodSelect           = "select"
	MethodAnd              = "and"
	MethodOr               = "or"
)

var queryMethods = map[string]struct{}{
	MethodEqual:            {},
	MethodNotEqual:         {},
	MethodLessThan:         {},
	MethodLessThanEqual:    {},
	MethodGreaterThan:      {},
	MethodGreaterThanEqual: {},
	MethodContains:         {},
	MethodNotContains:      {},
	MethodSearch:           {},
	MethodNotSearch:        {},
	MethodIsNull:           {},
	MethodIsNotNull:        {},
	MethodBetween:          {},
	MethodStartsWith:       {},
	MethodNotStartsWith:    {},
	MethodEndsWith:         {},
	MethodNotEndsWith:      {},
	MethodLimit:            {},
	MethodOffset:           {},
	MethodOrderAsc:         {},
	MethodOrderDesc:        {},
	MethodSelect:           {},
	MethodAnd:              {},
	MethodOr:               {},
}

// IsMethod reports whether method is a recognized query operator.
func IsMethod(method string) bool {
	_, ok := queryMethods[method]
	return ok
}

// IsLogicalMethod reports whether method composes nested queries.
func IsLogicalMethod(method string) bool {
	return method == MethodAnd || method == MethodOr
}

// Query is a single declarative filter, sort, pagination, or projection
// instruction. Logical queries (and/or) carry nested *Query values; every
// other method carries opaque scalar or slice operands. Queries are
// immutable after construction apart from Clone.
type Query struct {
	method    string
	attribute string
	values    []interface{}
}

// NewQuery validates and builds a query. For logical methods every
// operand must already be a *Query or a map shaped like the JSON wire
// format; anything else fails.
func NewQuery(method, attribute string, values []interface{}) (*Query, error) {
	if !IsMethod(method) {
		return nil, fmt.Errorf("method %q: %w", method, ErrInvalidQueryMethod)
	}
	if IsLogicalMethod(method) {
		nested := make([]interface{}, len(values))
		for i, value := range values {
			switch v := value.(type) {
			case *Query:
				nested[i] = v.Clone()
			case map[string]interface{}:
				q, err := queryFromMap(v)
				if err != nil {
					return nil, err
				}
				nested[i] = q
			default:
				return nil, fmt.Errorf("method %q operand %d of type %T: %w", method, i, value, ErrInvalidQueryValue)
			}
		}
		return &Query{method: method, values: nested}, nil
	}
	return &Query{method: method, attribute: attribute, values: cloneValues(values)}, nil
}

// Method returns the operator string.
func (q *Query) Method() string { return q.method }

// Attribute returns the target attribute name, or "" for methods that
// have none.
func (q *Query) Attribute() string { return q.attribute }

// Values returns the operand list. Logical queries hold *Query operands.
func (q *Query) Values() []interface{} { return q.values }

// Clone deep-copies the query, recursing into nested queries and operand
// containers.
func (q *Query) Clone() *Query {
	return &Query{
		method:    q.method,
		attribute: q.attribute,
		values:    cloneValues(q.values),
	}
}

func cloneValues(values []interface{}) []interface{} {
	out := make([]interface{}, len(values))
	for i, value := range values {
		out[i] = cloneValue(value)
	}
	return out
}

func cloneValue(value interface{}) interface{} {
	switch v := value.(type) {
	case *Query:
		return v.Clone()
	case *Document:
		return v.Clone()
	case []interface{}:
		return cloneValues(v)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, nested := range v {
			out[key] = cloneValue(nested)
		}
		return out
	default:
		return value
	}
}

// queryJSON is the wire shape: {method, attribute?, values?}.
type queryJSON struct {
	Method    string        `json:"method"`
	Attribute string        `json:"attribute,omitempty"`
	Values    []interface{} `json:"values,omitempty"`
}

// MarshalJSON serializes the query to its canonical wire shape. Nested
// queries serialize recursively; a Document operand of a non-logical
// query is reduced to its $id.
func (q *Query) MarshalJSON() ([]byte, error) {
	out := queryJSON{Method: q.method, Attribute: q.attribute}
	out.Values = make([]interface{}, len(q.values))
	for i, value := range q.values {
		switch v := value.(type) {
		case *Query:
			out.Values[i] = v
		case *Document:
			out.Values[i] = v.GetID()
		default:
			out.Values[i] = value
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the wire shape, validating the method and, for
// logical methods, recursively parsing nested queries.
func (q *Query) UnmarshalJSON(data []byte) error {
	var raw queryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewQuery(raw.Method, raw.Attribute, raw.Values)
	if err != nil {
		return err
	}
	*q = *parsed
	return nil
}

// queryFromMap converts an already-decoded JSON object into a Query.
func queryFromMap(m map[string]interface{}) (*Query, error) {
	method, _ := m["method"].(string)
	attribute, _ := m["attribute"].(string)
	values, _ := m["values"].([]interface{})
	return NewQuery(method, attribute, values)
}

// ParseQuery parses a single query from its JSON text form. Malformed
// JSON propagates the underlying parse error.
func ParseQuery(data string) (*Query, error) {
	var q Query
	if err := json.Unmarshal([]byte(data), &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// ParseQueries parses a JSON array of queries.
func ParseQueries(data string) ([]*Query, error) {
	var queries []*Query
	if err := json.Unmarshal([]byte(data), &queries); err != nil {
		return nil, err
	}
	return queries, nil
}

// String returns the canonical JSON serialization.
func (q *Query) String() string {
	data, err := json.Marshal(q)
	if err != nil {
		return ""
	}
	return string(data)
}

// Equal matches documents whose attribute equals any of the values.
func Equal(attribute string, values ...interface{}) *Query {
	return &Query{method: MethodEqual, attribute: attribute, values: values}
}

// NotEqual matches documents whose attribute equals none of the values.
func NotEqual(attribute string, values ...interface{}) *Query {
	return &Query{method: MethodNotEqual, attribute: attribute, values: values}
}

// LessThan matches documents whose attribute is below value.
func LessThan(attribute string, value interface{}) *Query {
	return &Query{method: MethodLessThan, attribute: attribute, values: []interface{}{value}}
}

// LessThanEqual matches documents whose attribute is at most value.
func LessThanEqual(attribute string, value interface{}) *Query {
	return &Query{method: MethodLessThanEqual, attribute: attribute, values: []interface{}{value}}
}

// GreaterThan matches documents whose attribute is above value.
func GreaterThan(attribute string, value interface{}) *Query {
	return &Query{method: MethodGreaterThan, attribute: attribute, values: []interface{}{value}}
}

// GreaterThanEqual matches documents whose attribute is at least value.
func GreaterThanEqual(attribute string, value interface{}) *Query {
	return &Query{method: MethodGreaterThanEqual, attribute: attribute, values: []interface{}{value}}
}

// Between matches documents whose attribute lies in [low, high].
func Between(attribute string, low, high interface{}) *Query {
	return &Query{method: MethodBetween, attribute: attribute, values: []interface{}{low, high}}
}

// Contains matches array attributes holding every value, or scalar
// attributes equal to any value.
func Contains(attribute string, values ...interface{}) *Query {
	return &Query{method: MethodContains, attribute: attribute, values: values}
}

// NotContains is the negation of Contains.
func NotContains(attribute string, values ...interface{}) *Query {
	return &Query{method: MethodNotContains, attribute: attribute, values: values}
}

// Search matches string attributes containing value, case-insensitively.
func Search(attribute string, value string) *Query {
	return &Query{method: MethodSearch, attribute: attribute, values: []interface{}{value}}
}

// NotSearch is the negation of Search.
func NotSearch(attribute string, value string) *Query {
	return &Query{method: MethodNotSearch, attribute: attribute, values: []interface{}{value}}
}

// IsNull matches documents whose attribute is null or absent.
func IsNull(attribute string) *Query {
	return &Query{method: MethodIsNull, attribute: attribute}
}

// IsNotNull matches documents whose attribute has a concrete value.
func IsNotNull(attribute string) *Query {
	return &Query{method: MethodIsNotNull, attribute: attribute}
}

// StartsWith matches string attributes with the given prefix.
func StartsWith(attribute string, value string) *Query {
	return &Query{method: MethodStartsWith, attribute: attribute, values: []interface{}{value}}
}

// NotStartsWith is the negation of StartsWith.
func NotStartsWith(attribute string, value string) *Query {
	return &Query{method: MethodNotStartsWith, attribute: attribute, values: []interface{}{value}}
}

// EndsWith matches string attributes with the given suffix.
func EndsWith(attribute string, value string) *Query {
	return &Query{method: MethodEndsWith, attribute: attribute, values: []interface{}{value}}
}

// NotEndsWith is the negation of EndsWith.
func NotEndsWith(attribute string, value string) *Query {
	return &Query{method: MethodNotEndsWith, attribute: attribute, values: []interface{}{value}}
}

// Limit caps the number of returned documents.
func Limit(limit int) *Query {
	return &Query{method: MethodLimit, values: []interface{}{limit}}
}

// Offset skips the given number of leading documents.
func Offset(offset int) *Query {
	return &Query{method: MethodOffset, values: []interface{}{offset}}
}

// OrderAsc sorts ascending by attribute.
func OrderAsc(attribute string) *Query {
	return &Query{method: MethodOrderAsc, attribute: attribute}
}

// OrderDesc sorts descending by attribute.
func OrderDesc(attribute string) *Query {
	return &Query{method: MethodOrderDesc, attribute: attribute}
}

// Select restricts returned attributes to the named subset plus the
// identity metadata keys.
func Select(attributes []string) *Query {
	values := make([]interface{}, len(attributes))
	for i, attr := range attributes {
		values[i] = attr
	}
	return &Query{method: MethodSelect, values: values}
}

// And matches documents satisfying every nested query.
func And(queries ...*Query) *Query {
	values := make([]interface{}, len(queries))
	for i, q := range queries {
		values[i] = q
	}
	return &Query{method: MethodAnd, values: values}
}

// Or matches documents satisfying at least one nested query.
func Or(queries ...*Query) *Query {
	values := make([]interface{}, len(queries))
	for i, q := range queries {
		values[i] = q
	}
	return &Query{method: MethodOr, values: values}
}

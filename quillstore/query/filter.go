package query

import (
	"strings"

	"github.com/quillbase/quillstore/types"
)

// matchesAll applies the logical AND of every filter query.
func (p *processor) matchesAll(doc *types.Document, filters []*types.Query) bool {
	for _, q := range filters {
		if !p.matchQuery(doc, q) {
			return false
		}
	}
	return true
}

// matchesAny requires at least one filter to pass.
func (p *processor) matchesAny(doc *types.Document, filters []*types.Query) bool {
	for _, q := range filters {
		if p.matchQuery(doc, q) {
			return true
		}
	}
	return false
}

// matchQuery evaluates one filter query against a document. Absent
// attributes evaluate as null. An unrecognized method is vacuously true;
// Query's own validation makes that unreachable in practice.
func (p *processor) matchQuery(doc *types.Document, q *types.Query) bool {
	if types.IsLogicalMethod(q.Method()) {
		nested := nestedQueries(q)
		if q.Method() == types.MethodAnd {
			return p.matchesAll(doc, nested)
		}
		return p.matchesAny(doc, nested)
	}

	value := doc.GetAttribute(q.Attribute())
	operands := q.Values()

	switch q.Method() {
	case types.MethodEqual:
		return equalsAny(value, operands)
	case types.MethodNotEqual:
		return !equalsAny(value, operands)
	case types.MethodLessThan:
		return len(operands) > 0 && compareValues(value, operands[0]) < 0
	case types.MethodLessThanEqual:
		return len(operands) > 0 && compareValues(value, operands[0]) <= 0
	case types.MethodGreaterThan:
		return len(operands) > 0 && compareValues(value, operands[0]) > 0
	case types.MethodGreaterThanEqual:
		return len(operands) > 0 && compareValues(value, operands[0]) >= 0
	case types.MethodBetween:
		return len(operands) >= 2 &&
			compareValues(value, operands[0]) >= 0 &&
			compareValues(value, operands[1]) <= 0
	case types.MethodContains:
		return contains(value, operands)
	case types.MethodNotContains:
		return !contains(value, operands)
	case types.MethodSearch:
		return search(value, operands)
	case types.MethodNotSearch:
		return !search(value, operands)
	case types.MethodStartsWith:
		s, ok := value.(string)
		return ok && len(operands) > 0 && strings.HasPrefix(s, valueToString(operands[0]))
	case types.MethodNotStartsWith:
		s, ok := value.(string)
		return !ok || len(operands) == 0 || !strings.HasPrefix(s, valueToString(operands[0]))
	case types.MethodEndsWith:
		s, ok := value.(string)
		return ok && len(operands) > 0 && strings.HasSuffix(s, valueToString(operands[0]))
	case types.MethodNotEndsWith:
		s, ok := value.(string)
		return !ok || len(operands) == 0 || !strings.HasSuffix(s, valueToString(operands[0]))
	case types.MethodIsNull:
		return value == nil
	case types.MethodIsNotNull:
		return value != nil
	default:
		return true
	}
}

// nestedQueries extracts the *Query operands of a logical query.
func nestedQueries(q *types.Query) []*types.Query {
	nested := make([]*types.Query, 0, len(q.Values()))
	for _, value := range q.Values() {
		if nq, ok := value.(*types.Query); ok {
			nested = append(nested, nq)
		}
	}
	return nested
}

// equalsAny reports whether value equals any of the operands.
func equalsAny(value interface{}, operands []interface{}) bool {
	for _, operand := range operands {
		if compareValues(value, operand) == 0 {
			return true
		}
	}
	return false
}

// contains implements the contains operator: for array attributes every
// operand must be found among the elements; for scalars it degrades to
// equalsAny.
func contains(value interface{}, operands []interface{}) bool {
	elements, ok := value.([]interface{})
	if !ok {
		return equalsAny(value, operands)
	}
	for _, operand := range operands {
		if !equalsAny(operand, elements) {
			return false
		}
	}
	return true
}

// search reports whether a string attribute contains the operand
// substring, case-insensitively.
func search(value interface{}, operands []interface{}) bool {
	s, ok := value.(string)
	if !ok || len(operands) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(valueToString(operands[0])))
}

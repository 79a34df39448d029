// Package query provides query execution for quillstore adapters.
// It turns a list of Query objects into filtered, ordered, paginated,
// and projected results over an in-memory document set.
package query

import (
	"github.com/quillbase/quillstore/types"
)

// Processor handles query execution against a set of documents.
type Processor interface {
	// Execute runs the queries against docs and returns cloned results.
	Execute(docs []*types.Document, queries []*types.Query) ([]*types.Document, error)

	// Matches reports whether a single document satisfies every
	// filter-class query in the list.
	Matches(doc *types.Document, queries []*types.Query) bool
}

// processor implements the Processor interface.
type processor struct{}

// NewProcessor creates a new query processor.
func NewProcessor() Processor {
	return &processor{}
}

// plan is the partition of a query list into its execution stages.
type plan struct {
	filters []*types.Query
	orderBy []orderClause
	selects []string
	limit   int // -1 means no limit
	offset  int
}

// orderClause is a single sort key.
type orderClause struct {
	attribute  string
	descending bool
}

// buildPlan partitions queries by method. Repeated limit/offset entries
// keep the last occurrence; order and select entries accumulate in the
// order given.
func buildPlan(queries []*types.Query) plan {
	p := plan{limit: -1}
	for _, q := range queries {
		if q == nil {
			continue
		}
		switch q.Method() {
		case types.MethodLimit:
			if n, ok := firstInt(q.Values()); ok {
				p.limit = n
			}
		case types.MethodOffset:
			if n, ok := firstInt(q.Values()); ok {
				p.offset = n
			}
		case types.MethodOrderAsc:
			p.orderBy = append(p.orderBy, orderClause{attribute: q.Attribute()})
		case types.MethodOrderDesc:
			p.orderBy = append(p.orderBy, orderClause{attribute: q.Attribute(), descending: true})
		case types.MethodSelect:
			for _, v := range q.Values() {
				p.selects = append(p.selects, valueToString(v))
			}
		default:
			p.filters = append(p.filters, q)
		}
	}
	return p
}

// Execute runs the full pipeline in fixed stage order: filter, then
// sort, then offset/limit, then projection. The stored documents are
// never mutated or aliased; every returned document is a clone.
func (p *processor) Execute(docs []*types.Document, queries []*types.Query) ([]*types.Document, error) {
	qp := buildPlan(queries)

	result := make([]*types.Document, 0, len(docs))
	for _, doc := range docs {
		if !p.matchesAll(doc, qp.filters) {
			continue
		}
		result = append(result, doc.Clone())
	}

	if len(qp.orderBy) > 0 {
		sortDocuments(result, qp.orderBy)
	}

	if qp.offset > 0 {
		if qp.offset >= len(result) {
			result = result[:0]
		} else {
			result = result[qp.offset:]
		}
	}
	if qp.limit >= 0 && qp.limit < len(result) {
		result = result[:qp.limit]
	}

	if len(qp.selects) > 0 {
		projected, err := projectDocuments(result, qp.selects)
		if err != nil {
			return nil, err
		}
		result = projected
	}

	return result, nil
}

// Matches implements the Processor interface method.
func (p *processor) Matches(doc *types.Document, queries []*types.Query) bool {
	return p.matchesAll(doc, buildPlan(queries).filters)
}

// projectDocuments replaces each document with one holding only the
// selected attributes plus the identity metadata keys. Projection
// applies to the result set, never to storage.
func projectDocuments(docs []*types.Document, selects []string) ([]*types.Document, error) {
	projected := make([]*types.Document, len(docs))
	for i, doc := range docs {
		data := map[string]interface{}{
			types.KeyID:         doc.GetID(),
			types.KeyCollection: doc.GetCollection(),
		}
		for _, key := range selects {
			if doc.Has(key) {
				data[key] = doc.GetAttribute(key)
			}
		}
		slim, err := types.NewDocument(data)
		if err != nil {
			return nil, err
		}
		projected[i] = slim
	}
	return projected, nil
}

// firstInt extracts the sole numeric operand of a limit/offset query.
func firstInt(values []interface{}) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	if f, ok := toFloat(values[0]); ok {
		return int(f), true
	}
	return 0, false
}

package query

import (
	"sort"

	"github.com/quillbase/quillstore/types"
)

// sortDocuments stable-sorts docs by the given keys, first listed being
// the primary key. Ties preserve the original relative order.
//
// Null handling is deliberate: the comparator treats a missing value as
// the minimum before the direction is applied, so flipping the sign for
// a descending key places documents without the attribute last. That
// placement is observable behavior and is pinned by tests.
func sortDocuments(docs []*types.Document, orderBy []orderClause) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, clause := range orderBy {
			cmp := compareValues(
				docs[i].GetAttribute(clause.attribute),
				docs[j].GetAttribute(clause.attribute),
			)
			if clause.descending {
				cmp = -cmp
			}
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
}

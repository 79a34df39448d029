package types

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewQueryValidation(t *testing.T) {
	t.Run("unknown method is rejected", func(t *testing.T) {
		_, err := NewQuery("regex", "name", []interface{}{".*"})
		if !errors.Is(err, ErrInvalidQueryMethod) {
			t.Fatalf("expected ErrInvalidQueryMethod, got %v", err)
		}
	})

	t.Run("logical operand must be a query", func(t *testing.T) {
		_, err := NewQuery(MethodAnd, "", []interface{}{"not a query"})
		if !errors.Is(err, ErrInvalidQueryValue) {
			t.Fatalf("expected ErrInvalidQueryValue, got %v", err)
		}
	})

	t.Run("logical operand maps are converted", func(t *testing.T) {
		q, err := NewQuery(MethodOr, "", []interface{}{
			map[string]interface{}{"method": "equal", "attribute": "status", "values": []interface{}{"open"}},
			map[string]interface{}{"method": "isNull", "attribute": "status"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, v := range q.Values() {
			if _, ok := v.(*Query); !ok {
				t.Errorf("operand %d: expected *Query, got %T", i, v)
			}
		}
	})

	t.Run("nested invalid method is rejected", func(t *testing.T) {
		_, err := NewQuery(MethodAnd, "", []interface{}{
			map[string]interface{}{"method": "bogus"},
		})
		if !errors.Is(err, ErrInvalidQueryMethod) {
			t.Fatalf("expected ErrInvalidQueryMethod, got %v", err)
		}
	})
}

func TestQueryFactories(t *testing.T) {
	tests := []struct {
		name       string
		query      *Query
		wantMethod string
		wantAttr   string
		wantValues []interface{}
	}{
		{"equal", Equal("status", "open", "blocked"), MethodEqual, "status", []interface{}{"open", "blocked"}},
		{"notEqual", NotEqual("status", "done"), MethodNotEqual, "status", []interface{}{"done"}},
		{"lessThan", LessThan("score", 10), MethodLessThan, "score", []interface{}{10}},
		{"between", Between("score", 10, 20), MethodBetween, "score", []interface{}{10, 20}},
		{"contains", Contains("tags", "go", "db"), MethodContains, "tags", []interface{}{"go", "db"}},
		{"search", Search("title", "bug"), MethodSearch, "title", []interface{}{"bug"}},
		{"isNull", IsNull("status"), MethodIsNull, "status", nil},
		{"startsWith", StartsWith("name", "A"), MethodStartsWith, "name", []interface{}{"A"}},
		{"limit", Limit(5), MethodLimit, "", []interface{}{5}},
		{"offset", Offset(10), MethodOffset, "", []interface{}{10}},
		{"orderAsc", OrderAsc("name"), MethodOrderAsc, "name", nil},
		{"orderDesc", OrderDesc("score"), MethodOrderDesc, "score", nil},
		{"select", Select([]string{"name", "score"}), MethodSelect, "", []interface{}{"name", "score"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Method(); got != tt.wantMethod {
				t.Errorf("method = %q, want %q", got, tt.wantMethod)
			}
			if got := tt.query.Attribute(); got != tt.wantAttr {
				t.Errorf("attribute = %q, want %q", got, tt.wantAttr)
			}
			if diff := cmp.Diff(tt.wantValues, tt.query.Values()); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQuerySerializationRoundTrip(t *testing.T) {
	queries := []*Query{
		Equal("status", "open"),
		Between("score", 10, 20),
		IsNull("deleted"),
		Limit(5),
		Or(
			Equal("role", "admin"),
			And(
				GreaterThanEqual("score", 50),
				Contains("tags", "go"),
			),
		),
	}

	for _, q := range queries {
		t.Run(q.Method(), func(t *testing.T) {
			parsed, err := ParseQuery(q.String())
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if parsed.String() != q.String() {
				t.Errorf("round trip mismatch:\n got %s\nwant %s", parsed.String(), q.String())
			}
		})
	}
}

func TestQueryWireFormat(t *testing.T) {
	t.Run("attribute and values omitted when empty", func(t *testing.T) {
		if got := IsNull("status").String(); got != `{"method":"isNull","attribute":"status"}` {
			t.Errorf("unexpected serialization: %s", got)
		}
		if got := Limit(3).String(); got != `{"method":"limit","values":[3]}` {
			t.Errorf("unexpected serialization: %s", got)
		}
	})

	t.Run("document operand reduces to id", func(t *testing.T) {
		doc, err := NewDocument(map[string]interface{}{"$id": "u1", "name": "Ada"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		q := Equal("author", doc)
		if got := q.String(); got != `{"method":"equal","attribute":"author","values":["u1"]}` {
			t.Errorf("unexpected serialization: %s", got)
		}
	})

	t.Run("parse rejects unknown method", func(t *testing.T) {
		_, err := ParseQuery(`{"method": "explode"}`)
		if !errors.Is(err, ErrInvalidQueryMethod) {
			t.Fatalf("expected ErrInvalidQueryMethod, got %v", err)
		}
	})

	t.Run("parse rejects malformed json", func(t *testing.T) {
		if _, err := ParseQuery(`{"method":`); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestParseQueries(t *testing.T) {
	queries, err := ParseQueries(`[
		{"method": "equal", "attribute": "status", "values": ["open"]},
		{"method": "orderDesc", "attribute": "score"},
		{"method": "limit", "values": [10]}
	]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queries) != 3 {
		t.Fatalf("got %d queries, want 3", len(queries))
	}
	if queries[0].Method() != MethodEqual || queries[1].Method() != MethodOrderDesc || queries[2].Method() != MethodLimit {
		t.Errorf("unexpected methods: %s, %s, %s",
			queries[0].Method(), queries[1].Method(), queries[2].Method())
	}

	t.Run("one bad query fails the batch", func(t *testing.T) {
		_, err := ParseQueries(`[{"method": "equal"}, {"method": "nope"}]`)
		if !errors.Is(err, ErrInvalidQueryMethod) {
			t.Fatalf("expected ErrInvalidQueryMethod, got %v", err)
		}
	})
}

func TestQueryClone(t *testing.T) {
	inner := Equal("status", "open")
	q := And(inner, Contains("tags", []interface{}{"go"}))
	clone := q.Clone()

	if clone.String() != q.String() {
		t.Fatalf("clone mismatch:\n got %s\nwant %s", clone.String(), q.String())
	}

	// Nested queries are copied, not shared.
	if clone.Values()[0].(*Query) == q.Values()[0].(*Query) {
		t.Error("clone shares nested query pointer")
	}
}

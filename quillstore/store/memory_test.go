package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/quillbase/quillstore/types"
)

func mustDoc(t *testing.T, data map[string]interface{}) *types.Document {
	t.Helper()
	doc, err := types.NewDocument(data)
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	return doc
}

func newTestAdapter(t *testing.T) types.Adapter {
	t.Helper()
	adapter := NewMemory()
	t.Cleanup(func() { _ = adapter.Close() })
	if err := adapter.CreateCollection(context.Background(), types.Collection{Name: "notes"}); err != nil {
		t.Fatalf("create collection: %v", err)
	}
	return adapter
}

func TestMemoryCollectionLifecycle(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemory()
	defer func() { _ = adapter.Close() }()

	if err := adapter.CreateCollection(ctx, types.Collection{Name: "notes"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("duplicate name is rejected", func(t *testing.T) {
		err := adapter.CreateCollection(ctx, types.Collection{Name: "notes"})
		if !errors.Is(err, types.ErrCollectionExists) {
			t.Fatalf("expected ErrCollectionExists, got %v", err)
		}
	})

	t.Run("invalid name is rejected", func(t *testing.T) {
		err := adapter.CreateCollection(ctx, types.Collection{Name: "$system"})
		if err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("list reports schemas", func(t *testing.T) {
		collections, err := adapter.ListCollections(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(collections) != 1 || collections[0].Name != "notes" {
			t.Errorf("unexpected collections: %+v", collections)
		}
	})

	t.Run("delete removes the collection", func(t *testing.T) {
		if err := adapter.DeleteCollection(ctx, "notes"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		err := adapter.DeleteCollection(ctx, "notes")
		if !errors.Is(err, types.ErrCollectionNotFound) {
			t.Fatalf("expected ErrCollectionNotFound, got %v", err)
		}
	})
}

func TestMemoryDocumentCRUD(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	doc := mustDoc(t, map[string]interface{}{"$id": "n1", "title": "first"})

	stored, err := adapter.CreateDocument(ctx, "notes", doc)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if stored.GetID() != "n1" {
		t.Errorf("stored id = %q", stored.GetID())
	}

	t.Run("duplicate id is rejected", func(t *testing.T) {
		_, err := adapter.CreateDocument(ctx, "notes", doc)
		if !errors.Is(err, types.ErrDocumentExists) {
			t.Fatalf("expected ErrDocumentExists, got %v", err)
		}
	})

	t.Run("missing id is rejected", func(t *testing.T) {
		_, err := adapter.CreateDocument(ctx, "notes", mustDoc(t, map[string]interface{}{"title": "x"}))
		if !errors.Is(err, types.ErrMissingID) {
			t.Fatalf("expected ErrMissingID, got %v", err)
		}
	})

	t.Run("get returns the stored document", func(t *testing.T) {
		got, err := adapter.GetDocument(ctx, "notes", "n1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if diff := cmp.Diff(doc.ToMap(), got.ToMap()); diff != "" {
			t.Errorf("document mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("get of absent id returns nil without error", func(t *testing.T) {
		got, err := adapter.GetDocument(ctx, "notes", "nope")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %v", got.ToMap())
		}
	})

	t.Run("update replaces the document", func(t *testing.T) {
		updated := mustDoc(t, map[string]interface{}{"$id": "n1", "title": "second"})
		if _, err := adapter.UpdateDocument(ctx, "notes", updated); err != nil {
			t.Fatalf("update: %v", err)
		}
		got, err := adapter.GetDocument(ctx, "notes", "n1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.GetAttribute("title") != "second" {
			t.Errorf("title = %v, want second", got.GetAttribute("title"))
		}
	})

	t.Run("update of absent id fails", func(t *testing.T) {
		_, err := adapter.UpdateDocument(ctx, "notes", mustDoc(t, map[string]interface{}{"$id": "ghost"}))
		if !errors.Is(err, types.ErrDocumentNotFound) {
			t.Fatalf("expected ErrDocumentNotFound, got %v", err)
		}
	})

	t.Run("delete reports existence", func(t *testing.T) {
		deleted, err := adapter.DeleteDocument(ctx, "notes", "n1")
		if err != nil || !deleted {
			t.Fatalf("delete = (%v, %v), want (true, nil)", deleted, err)
		}
		deleted, err = adapter.DeleteDocument(ctx, "notes", "n1")
		if err != nil || deleted {
			t.Fatalf("second delete = (%v, %v), want (false, nil)", deleted, err)
		}
	})

	t.Run("unknown collection fails every operation", func(t *testing.T) {
		if _, err := adapter.GetDocument(ctx, "ghosts", "n1"); !errors.Is(err, types.ErrCollectionNotFound) {
			t.Errorf("get: expected ErrCollectionNotFound, got %v", err)
		}
		if _, err := adapter.ListDocuments(ctx, "ghosts", nil); !errors.Is(err, types.ErrCollectionNotFound) {
			t.Errorf("list: expected ErrCollectionNotFound, got %v", err)
		}
		if _, err := adapter.CreateDocument(ctx, "ghosts", doc); !errors.Is(err, types.ErrCollectionNotFound) {
			t.Errorf("create: expected ErrCollectionNotFound, got %v", err)
		}
	})
}

func TestMemoryDocumentIsolation(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	doc := mustDoc(t, map[string]interface{}{"$id": "n1", "title": "original"})
	stored, err := adapter.CreateDocument(ctx, "notes", doc)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Mutating either the input or the returned document must not
	// change stored state.
	if err := doc.SetAttribute("title", "input changed"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := stored.SetAttribute("title", "output changed"); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := adapter.GetDocument(ctx, "notes", "n1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.GetAttribute("title") != "original" {
		t.Errorf("stored title = %v, want original", got.GetAttribute("title"))
	}
}

func TestMemoryListDocuments(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	for i, title := range []string{"alpha", "beta", "gamma"} {
		doc := mustDoc(t, map[string]interface{}{
			"$id":   []string{"n1", "n2", "n3"}[i],
			"title": title,
			"rank":  i,
		})
		if _, err := adapter.CreateDocument(ctx, "notes", doc); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	docs, err := adapter.ListDocuments(ctx, "notes", []*types.Query{
		types.GreaterThan("rank", 0),
		types.OrderDesc("rank"),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"n3", "n2"}
	got := make([]string, len(docs))
	for i, d := range docs {
		got[i] = d.GetID()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryUpdateKeepsPosition(t *testing.T) {
	// Insertion order is the tie-break order for stable sorting, so an
	// update must not move the document to the end.
	ctx := context.Background()
	adapter := newTestAdapter(t)

	for _, id := range []string{"n1", "n2", "n3"} {
		doc := mustDoc(t, map[string]interface{}{"$id": id, "rank": 1})
		if _, err := adapter.CreateDocument(ctx, "notes", doc); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	if _, err := adapter.UpdateDocument(ctx, "notes", mustDoc(t, map[string]interface{}{"$id": "n1", "rank": 1})); err != nil {
		t.Fatalf("update: %v", err)
	}

	docs, err := adapter.ListDocuments(ctx, "notes", []*types.Query{types.OrderAsc("rank")})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := make([]string, len(docs))
	for i, d := range docs {
		got[i] = d.GetID()
	}
	if diff := cmp.Diff([]string{"n1", "n2", "n3"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

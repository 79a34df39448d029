// Package testutil provides a shared fixture universe for tests across
// the repository. The universe is a small but deliberately awkward data
// set: documents with missing attributes, permission lists, array
// values, and nested documents, so query and adapter tests exercise the
// edge cases without each test building its own data.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/quillbase/quillstore/quillstore"
	"github.com/quillbase/quillstore/types"
)

// UniverseData provides typed access to the fixture documents.
type UniverseData struct {
	// Users collection
	Alice *types.Document // admin, score 90, tags [go, db]
	Bob   *types.Document // editor, score 75, tags [go]
	Carol *types.Document // viewer, score 75, no tags attribute
	Dave  *types.Document // no role attribute, score 40
	Erin  *types.Document // viewer, no score attribute, nested address

	// Tasks collection
	WriteDocs *types.Document // open, priority 2, assignee ref to Alice
	FixBug    *types.Document // open, priority 1
	ShipIt    *types.Document // done, priority 3
	Untriaged *types.Document // no status attribute

	// All fixture documents by id.
	ByID map[string]*types.Document
}

// FixedTime is the deterministic clock value stamped on every fixture
// document.
var FixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// SequentialIDs returns an id generator yielding "id-1", "id-2", ...
// for deterministic document ids.
func SequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// UsersCollection is the schema of the fixture users collection.
func UsersCollection() types.Collection {
	return types.Collection{
		Name: "users",
		Attributes: []types.Attribute{
			{Key: "name", Type: types.AttributeString, Required: true},
			{Key: "role", Type: types.AttributeString},
			{Key: "score", Type: types.AttributeInteger},
			{Key: "tags", Type: types.AttributeString, Array: true},
		},
	}
}

// TasksCollection is the schema of the fixture tasks collection.
func TasksCollection() types.Collection {
	return types.Collection{
		Name: "tasks",
		Attributes: []types.Attribute{
			{Key: "title", Type: types.AttributeString, Required: true},
			{Key: "status", Type: types.AttributeString},
			{Key: "priority", Type: types.AttributeInteger},
		},
	}
}

// LoadUniverse populates a fresh in-memory database with the fixture
// universe and returns it alongside typed document handles. The
// database is closed automatically when the test finishes.
func LoadUniverse(t *testing.T) (*quillstore.Database, *UniverseData) {
	t.Helper()

	db := quillstore.New(quillstore.NewMemory(),
		quillstore.WithTimeFunc(func() time.Time { return FixedTime }),
		quillstore.WithIDFunc(SequentialIDs()),
	)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	for _, col := range []types.Collection{UsersCollection(), TasksCollection()} {
		if err := db.CreateCollection(ctx, col); err != nil {
			t.Fatalf("create collection %s: %v", col.Name, err)
		}
	}

	u := &UniverseData{ByID: make(map[string]*types.Document)}

	add := func(collection string, data map[string]interface{}) *types.Document {
		doc, err := types.NewDocument(data)
		if err != nil {
			t.Fatalf("build fixture document: %v", err)
		}
		stored, err := db.CreateDocument(ctx, collection, doc)
		if err != nil {
			t.Fatalf("seed %s document: %v", collection, err)
		}
		u.ByID[stored.GetID()] = stored
		return stored
	}

	u.Alice = add("users", map[string]interface{}{
		"$id":          "alice",
		"$permissions": []interface{}{"read(any)", "update(user:alice)", "delete(user:alice)"},
		"name":         "Alice",
		"role":         "admin",
		"score":        90,
		"tags":         []interface{}{"go", "db"},
	})
	u.Bob = add("users", map[string]interface{}{
		"$id":   "bob",
		"name":  "Bob",
		"role":  "editor",
		"score": 75,
		"tags":  []interface{}{"go"},
	})
	u.Carol = add("users", map[string]interface{}{
		"$id":   "carol",
		"name":  "Carol",
		"role":  "viewer",
		"score": 75,
	})
	u.Dave = add("users", map[string]interface{}{
		"$id":   "dave",
		"name":  "Dave",
		"score": 40,
	})
	u.Erin = add("users", map[string]interface{}{
		"$id":  "erin",
		"name": "Erin",
		"role": "viewer",
		"address": map[string]interface{}{
			"$id":  "addr-erin",
			"city": "Lisbon",
		},
	})

	u.WriteDocs = add("tasks", map[string]interface{}{
		"$id":      "t-docs",
		"title":    "Write documentation",
		"status":   "open",
		"priority": 2,
		"assignee": map[string]interface{}{
			"$id":  "alice",
			"name": "Alice",
		},
	})
	u.FixBug = add("tasks", map[string]interface{}{
		"$id":      "t-bug",
		"title":    "Fix login bug",
		"status":   "open",
		"priority": 1,
	})
	u.ShipIt = add("tasks", map[string]interface{}{
		"$id":      "t-ship",
		"title":    "Ship release",
		"status":   "done",
		"priority": 3,
	})
	u.Untriaged = add("tasks", map[string]interface{}{
		"$id":   "t-untriaged",
		"title": "Untriaged report",
	})

	return db, u
}

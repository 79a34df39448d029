package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillbase/quillstore/types"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage documents",
}

var documentAddCmd = &cobra.Command{
	Use:   "add <collection> [json]",
	Short: "Add a document",
	Long: `Add a document to a collection.

The document body is a JSON object given as the second argument or read
from stdin when omitted. Reserved keys like $id may be included; a
missing $id is generated.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		raw, err := documentBody(args)
		if err != nil {
			return err
		}

		var data map[string]interface{}
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("failed to parse document: %w", err)
		}
		doc, err := types.NewDocument(data)
		if err != nil {
			return fmt.Errorf("invalid document: %w", err)
		}

		stored, err := db.CreateDocument(context.Background(), args[0], doc)
		if err != nil {
			return fmt.Errorf("failed to add document: %w", err)
		}
		slog.Info("document added", "collection", args[0], "id", stored.GetID())
		return printDocuments([]*types.Document{stored})
	},
}

var documentGetCmd = &cobra.Command{
	Use:   "get <collection> <id>",
	Short: "Get a document by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		doc, err := db.GetDocument(context.Background(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}
		if doc == nil {
			return fmt.Errorf("document %q not found in %q", args[1], args[0])
		}
		return printDocuments([]*types.Document{doc})
	},
}

var documentRemoveCmd = &cobra.Command{
	Use:   "rm <collection> <id>",
	Short: "Remove a document by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		deleted, err := db.DeleteDocument(context.Background(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to remove document: %w", err)
		}
		if !deleted {
			return fmt.Errorf("document %q not found in %q", args[1], args[0])
		}
		slog.Info("document removed", "collection", args[0], "id", args[1])
		fmt.Printf("Removed document %q\n", args[1])
		return nil
	},
}

var documentListCmd = &cobra.Command{
	Use:   "ls <collection>",
	Short: "List documents",
	Long: `List documents in a collection, optionally filtered.

Each --query flag takes one serialized query, for example:

  --query '{"method": "equal", "attribute": "status", "values": ["open"]}'
  --query '{"method": "orderDesc", "attribute": "score"}'
  --query '{"method": "limit", "values": [10]}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		queries := make([]*types.Query, 0, len(rawQueries))
		for _, raw := range rawQueries {
			q, err := types.ParseQuery(raw)
			if err != nil {
				return fmt.Errorf("invalid query %s: %w", raw, err)
			}
			queries = append(queries, q)
		}

		docs, err := db.ListDocuments(context.Background(), args[0], queries...)
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}
		slog.Debug("documents listed", "collection", args[0], "count", len(docs))
		return printDocuments(docs)
	},
}

var rawQueries []string

// documentBody returns the JSON body from the argument list or stdin.
func documentBody(args []string) ([]byte, error) {
	if len(args) == 2 {
		return []byte(args[1]), nil
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read document from stdin: %w", err)
	}
	return raw, nil
}

func init() {
	documentListCmd.Flags().StringArrayVarP(&rawQueries, "query", "q", nil, "serialized query (repeatable)")

	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	documentCmd.AddCommand(documentListCmd)
}

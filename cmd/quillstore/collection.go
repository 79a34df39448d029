package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillbase/quillstore/types"
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Manage collections",
}

var collectionCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a collection",
	Long: `Create a collection with an optional schema.

The schema is a JSON array of attribute definitions read from the
--schema file, for example:

  [{"key": "title", "type": "string", "required": true},
   {"key": "tags", "type": "string", "array": true}]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		col := types.Collection{Name: args[0]}
		if schemaFile != "" {
			data, err := os.ReadFile(schemaFile)
			if err != nil {
				return fmt.Errorf("failed to read schema file: %w", err)
			}
			if err := json.Unmarshal(data, &col.Attributes); err != nil {
				return fmt.Errorf("failed to parse schema: %w", err)
			}
		}

		if err := db.CreateCollection(context.Background(), col); err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		slog.Info("collection created", "name", col.Name)
		fmt.Printf("Created collection %q\n", col.Name)
		return nil
	},
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		collections, err := db.ListCollections(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list collections: %w", err)
		}
		return printCollections(collections)
	},
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a collection and all its documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := db.DeleteCollection(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete collection: %w", err)
		}
		slog.Info("collection deleted", "name", args[0])
		fmt.Printf("Deleted collection %q\n", args[0])
		return nil
	},
}

var schemaFile string

func init() {
	collectionCreateCmd.Flags().StringVar(&schemaFile, "schema", "", "path to JSON schema file")

	collectionCmd.AddCommand(collectionCreateCmd)
	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionDeleteCmd)
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/quillbase/quillstore/types"
)

// printDocuments renders documents in the configured output format.
func printDocuments(docs []*types.Document) error {
	maps := make([]map[string]interface{}, len(docs))
	for i, doc := range docs {
		maps[i] = doc.ToMap()
	}

	switch cfg.GetString("format") {
	case "json":
		return printJSON(maps)
	case "yaml":
		return printYAML(maps)
	case "table":
		return printDocumentTable(maps)
	default:
		return fmt.Errorf("unknown output format %q", cfg.GetString("format"))
	}
}

// printCollections renders collection schemas in the configured output
// format.
func printCollections(collections []types.Collection) error {
	switch cfg.GetString("format") {
	case "json":
		return printJSON(collections)
	case "yaml":
		return printYAML(collections)
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tATTRIBUTES")
		for _, col := range collections {
			fmt.Fprintf(w, "%s\t%d\n", col.Name, len(col.Attributes))
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown output format %q", cfg.GetString("format"))
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	defer func() { _ = enc.Close() }()
	return enc.Encode(v)
}

// printDocumentTable prints one row per document. Columns are the union
// of keys across all documents, reserved keys first.
func printDocumentTable(maps []map[string]interface{}) error {
	if len(maps) == 0 {
		fmt.Println("No documents found")
		return nil
	}

	columns := tableColumns(maps)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, col := range columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col)
	}
	fmt.Fprintln(w)

	for _, m := range maps {
		for i, col := range columns {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			if v, ok := m[col]; ok {
				fmt.Fprintf(w, "%v", v)
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func tableColumns(maps []map[string]interface{}) []string {
	seen := make(map[string]bool)
	var reserved, attrs []string
	for _, m := range maps {
		for key := range m {
			if seen[key] {
				continue
			}
			seen[key] = true
			if types.IsReservedKey(key) {
				reserved = append(reserved, key)
			} else {
				attrs = append(attrs, key)
			}
		}
	}
	sort.Strings(reserved)
	sort.Strings(attrs)
	return append(reserved, attrs...)
}

// Entry point for the quillstore CLI.
// Build with: go build -o bin/quillstore ./cmd/quillstore
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillbase/quillstore/quillstore"
)

var (
	cfg       = viper.New()
	storePath string
	format    string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "quillstore",
	Short: "Quillstore CLI",
	Long: `Quillstore is an embedded document store with serializable queries.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (QUILLSTORE_*)
3. Configuration file (QUILLSTORE_CONFIG or default locations)`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		bindFlags(cmd)
		return initLogging(cfg.GetString("log-level"))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&storePath, "store", "s", "", "path to store file (required)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "table", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	setupConfig()

	rootCmd.AddCommand(collectionCmd)
	rootCmd.AddCommand(documentCmd)
}

// setupConfig configures viper with env vars and config file discovery.
func setupConfig() {
	if configFile := os.Getenv("QUILLSTORE_CONFIG"); configFile != "" {
		cfg.SetConfigFile(configFile)
	} else {
		cfg.SetConfigName("quillstore")
		cfg.SetConfigType("json")
		cfg.AddConfigPath(".")
		cfg.AddConfigPath("$HOME/.quillstore")
		cfg.AddConfigPath("/etc/quillstore")
	}

	cfg.AutomaticEnv()
	cfg.SetEnvPrefix("QUILLSTORE")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Config file is optional.
	_ = cfg.ReadInConfig()
}

// bindFlags lets explicitly set flags win over env vars and config file.
func bindFlags(cmd *cobra.Command) {
	_ = cfg.BindPFlags(cmd.Root().PersistentFlags())
}

// openDatabase opens the JSON-file backed database at the configured
// store path.
func openDatabase() (*quillstore.Database, error) {
	path := cfg.GetString("store")
	if path == "" {
		return nil, fmt.Errorf("store path is required (--store, QUILLSTORE_STORE, or config file)")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store path: %w", err)
	}

	adapter, err := quillstore.NewJSONFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return quillstore.New(adapter), nil
}

// Shared helpers for wordloom CLI commands.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/lexmesh/wordloom/internal/sqlite"
	"github.com/lexmesh/wordloom/pkg/types"
)

// openStore resolves the data directory and opens the label store. The
// caller must defer store.Close().
func openStore() (*sqlite.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		DataDir:       dataDir,
		ModelEndpoint: configModelEndpoint,
		BatchSize:     configBatchSize,
	}

	store, err := sqlite.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

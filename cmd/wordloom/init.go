// Init command creates the data directory and database schema.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the wordloom store",
	Long: `Init creates the data directory and the label store schema.

Running init against an existing store is a no-op; the schema DDL is
idempotent and existing data is untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		fmt.Printf("Initialized wordloom store in %s\n", store.DataDir())
		return nil
	},
}

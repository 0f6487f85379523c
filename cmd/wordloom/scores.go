// Scores command ingests pre-computed dimension scores from the external
// scoring models.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scoresImportFile string

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Manage externally produced dimension scores",
}

var scoresImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import dimension scores from a JSONL file",
	Long: `Import loads pre-computed scores from a JSONL file of
{"content_id": "...", "dimension": "...", "score": 0.5} records. One score
is kept per (content, dimension) pair; re-imports are no-ops. Unknown
dimensions and empty content ids are skipped and counted.

Example:
  wordloom scores import --file scores.jsonl`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		result, err := store.ImportScoresJSONL(scoresImportFile)
		if err != nil {
			return fmt.Errorf("import scores: %w", err)
		}

		if flagJSON {
			return printJSON(result)
		}
		fmt.Printf("Imported %d scores (%d inserted, %d lines skipped)\n",
			result.Records, result.Inserted, result.Skipped)
		return nil
	},
}

func init() {
	scoresImportCmd.Flags().StringVar(&scoresImportFile, "file", "", "scores JSONL file (required)")
	_ = scoresImportCmd.MarkFlagRequired("file")
	scoresCmd.AddCommand(scoresImportCmd)
}

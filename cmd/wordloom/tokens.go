// Tokens command ingests word tokens from collector output.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	tokensImportFile string
	tokensShowStory  string
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Manage the word token index",
}

var tokensImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import word tokens from a JSONL file",
	Long: `Import loads word tokens from a JSONL file of
{"story_id": "...", "words": ["...", ...]} records. Words are lowercased
for the join column; malformed lines are skipped.

Example:
  wordloom tokens import --file tokens.jsonl`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		result, err := store.ImportTokensJSONL(tokensImportFile)
		if err != nil {
			return fmt.Errorf("import tokens: %w", err)
		}

		if flagJSON {
			return printJSON(result)
		}
		fmt.Printf("Imported %d documents (%d tokens, %d lines skipped)\n",
			result.Records, result.Inserted, result.Skipped)
		return nil
	},
}

var tokensShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the tokens of one story or comment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		tokens, err := store.FetchWordTokens(tokensShowStory)
		if err != nil {
			return fmt.Errorf("fetch tokens: %w", err)
		}

		if flagJSON {
			return printJSON(tokens)
		}
		for _, tok := range tokens {
			fmt.Printf("%4d  %s\n", tok.Position, tok.Text)
		}
		fmt.Printf("%d tokens\n", len(tokens))
		return nil
	},
}

func init() {
	tokensImportCmd.Flags().StringVar(&tokensImportFile, "file", "", "tokens JSONL file (required)")
	_ = tokensImportCmd.MarkFlagRequired("file")
	tokensShowCmd.Flags().StringVar(&tokensShowStory, "story", "", "story or comment id (required)")
	_ = tokensShowCmd.MarkFlagRequired("story")
	tokensCmd.AddCommand(tokensImportCmd)
	tokensCmd.AddCommand(tokensShowCmd)
}

// Stats commands summarize the label store.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexmesh/wordloom/pkg/types"
)

var (
	statsDimension string
	statsMin       float64
	statsMax       float64
	statsLimit     int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the label store",
}

var statsWordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Rank words by frequency within a dimension score range",
	Long: `Words joins the token index against the dimension scores and ranks
words whose containing contents score within [--min, --max] on one
dimension.

Example:
  wordloom stats words --dimension valence --min 0.7 --limit 20`,
	Args: cobra.NoArgs,
	RunE: runStatsWords,
}

var statsLabelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Show label counts and the tier-1 domain distribution",
	Args:  cobra.NoArgs,
	RunE:  runStatsLabels,
}

var statsTablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Show row counts for every store table",
	Args:  cobra.NoArgs,
	RunE:  runStatsTables,
}

func init() {
	statsWordsCmd.Flags().StringVar(&statsDimension, "dimension", "", "dimension name (required)")
	statsWordsCmd.Flags().Float64Var(&statsMin, "min", 0, "minimum score")
	statsWordsCmd.Flags().Float64Var(&statsMax, "max", 0, "maximum score")
	statsWordsCmd.Flags().IntVar(&statsLimit, "limit", 100, "result limit")
	_ = statsWordsCmd.MarkFlagRequired("dimension")

	statsCmd.AddCommand(statsWordsCmd)
	statsCmd.AddCommand(statsLabelsCmd)
	statsCmd.AddCommand(statsTablesCmd)
}

func runStatsWords(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var min, max *float64
	if cmd.Flags().Changed("min") {
		min = &statsMin
	}
	if cmd.Flags().Changed("max") {
		max = &statsMax
	}

	stats, err := store.WordsByDimension(statsDimension, min, max, statsLimit)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(stats)
	}
	for _, st := range stats {
		fmt.Printf("%-24s %8d  avg %.3f\n", st.Word, st.Frequency, st.AvgScore)
	}
	fmt.Printf("%d words\n", len(stats))
	return nil
}

func runStatsLabels(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	comments, err := store.CountCommentLabels("")
	if err != nil {
		return err
	}
	words, err := store.CountWordLabels("")
	if err != nil {
		return err
	}
	domains, err := store.LabelDistributionByDomain()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]any{
			"comment_labels": comments,
			"word_labels":    words,
			"by_domain":      domains,
		})
	}
	fmt.Printf("Comment labels: %d\n", comments)
	fmt.Printf("Word labels:    %d\n", words)
	if len(domains) > 0 {
		fmt.Printf("%s label distribution by domain:\n", types.LabelTypeTopic)
		for _, d := range domains {
			fmt.Printf("  %-24s %8d labels (avg confidence %.3f)\n", d.Domain, d.LabelCount, d.AvgConfidence)
		}
	}
	return nil
}

func runStatsTables(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.RowCounts()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(counts)
	}
	for _, table := range types.StandardTableNames {
		fmt.Printf("%-20s %8d rows\n", table, counts[table])
	}
	return nil
}

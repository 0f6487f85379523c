// Taxonomy commands seed and inspect the three-tier topic taxonomy.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexmesh/wordloom/internal/taxonomy"
)

var (
	taxonomySeedFile string
	taxonomyShowTier int
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Manage the topic taxonomy",
}

var taxonomySeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the taxonomy from a YAML file",
	Long: `Seed populates the topic taxonomy from a YAML tree of tier-1 domains,
tier-2 categories, and tier-3 topics. Seeding only runs against an empty
taxonomy; re-seeding a populated store is a no-op.

Example:
  wordloom taxonomy seed --file taxonomy.yaml`,
	Args: cobra.NoArgs,
	RunE: runTaxonomySeed,
}

var taxonomyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List taxonomy nodes",
	Args:  cobra.NoArgs,
	RunE:  runTaxonomyShow,
}

func init() {
	taxonomySeedCmd.Flags().StringVar(&taxonomySeedFile, "file", "", "taxonomy YAML file (required)")
	_ = taxonomySeedCmd.MarkFlagRequired("file")
	taxonomyShowCmd.Flags().IntVar(&taxonomyShowTier, "tier", 0, "restrict to one tier (1-3, 0 for all)")

	taxonomyCmd.AddCommand(taxonomySeedCmd)
	taxonomyCmd.AddCommand(taxonomyShowCmd)
}

func runTaxonomySeed(cmd *cobra.Command, args []string) error {
	tree, err := taxonomy.Load(taxonomySeedFile)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.SeedTaxonomy(tree)
	if err != nil {
		return fmt.Errorf("seed taxonomy: %w", err)
	}

	if flagJSON {
		return printJSON(result)
	}
	if result.Skipped {
		fmt.Println("Taxonomy already populated; nothing seeded")
		return nil
	}
	fmt.Println("Taxonomy populated:")
	fmt.Printf("  Tier 1 (domains):    %d\n", result.Tier1)
	fmt.Printf("  Tier 2 (categories): %d\n", result.Tier2)
	fmt.Printf("  Tier 3 (topics):     %d\n", result.Tier3)
	return nil
}

func runTaxonomyShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	nodes, err := store.FetchTaxonomy(taxonomyShowTier)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(nodes)
	}
	for _, n := range nodes {
		fmt.Printf("%4d  tier=%d  %s\n", n.ID, n.Tier, n.Name)
	}
	fmt.Printf("%d nodes\n", len(nodes))
	return nil
}

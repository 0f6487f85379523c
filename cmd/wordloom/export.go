package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportFormat string
	exportType   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export label data to files",
}

var exportWordLabelsCmd = &cobra.Command{
	Use:   "word-labels",
	Short: "Export word labels as JSONL or CSV",
	Long: `Word-labels writes every word label to a file, one record per line for
JSONL or with a header row for CSV. The file is written atomically.

Example:
  wordloom export word-labels --out labels.jsonl
  wordloom export word-labels --out labels.csv --format csv --type topic`,
	Args: cobra.NoArgs,
	RunE: runExportWordLabels,
}

func init() {
	exportWordLabelsCmd.Flags().StringVar(&exportOut, "out", "", "output file path (required)")
	exportWordLabelsCmd.Flags().StringVar(&exportFormat, "format", "jsonl", "output format: jsonl or csv")
	exportWordLabelsCmd.Flags().StringVar(&exportType, "type", "", "restrict to one label type")
	_ = exportWordLabelsCmd.MarkFlagRequired("out")

	exportCmd.AddCommand(exportWordLabelsCmd)
}

func runExportWordLabels(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var n int
	switch exportFormat {
	case "jsonl":
		n, err = store.ExportWordLabelsJSONL(exportOut, exportType)
	case "csv":
		n, err = store.ExportWordLabelsCSV(exportOut, exportType)
	default:
		return fmt.Errorf("unknown format %q (want jsonl or csv)", exportFormat)
	}
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]any{"path": exportOut, "format": exportFormat, "records": n})
	}
	fmt.Printf("Exported %d word labels to %s\n", n, exportOut)
	return nil
}

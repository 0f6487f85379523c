// Label commands run the topic-assignment and propagation jobs and the
// explicit clears that precede a re-run.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexmesh/wordloom/internal/labeling"
	"github.com/lexmesh/wordloom/pkg/types"
)

var (
	labelEndpoint   string
	labelBatchSize  int
	labelClearFirst bool
	labelClearType  string
	labelClearWords bool
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Run the labeling jobs",
}

var labelCommentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Assign topic labels to comments via the topic model",
	Long: `Comments reconstructs document text from the token index, sends it to
the topic model in batches, and records one topic label per document with
conflict policy "do nothing". Outlier predictions, unmapped external ids,
and empty content ids are skipped and counted. A failed model batch is
counted and the run continues; re-running is safe.

Example:
  wordloom label comments --endpoint http://localhost:8800/predict`,
	Args: cobra.NoArgs,
	RunE: runLabelComments,
}

var labelPropagateCmd = &cobra.Command{
	Use:   "propagate",
	Short: "Propagate comment topic labels to words",
	Long: `Propagate projects every comment-level topic label onto the words of
the labeled content, as a set union over (word, label_type, label_value).
Re-running after new comment labels are added only adds new rows.`,
	Args: cobra.NoArgs,
	RunE: runLabelPropagate,
}

var labelClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear labels of one type before a re-run",
	Args:  cobra.NoArgs,
	RunE:  runLabelClear,
}

func init() {
	labelCommentsCmd.Flags().StringVar(&labelEndpoint, "endpoint", "", "topic model predict endpoint (default: model_endpoint from config)")
	labelCommentsCmd.Flags().IntVar(&labelBatchSize, "batch-size", 0, "documents per model batch (default: batch_size from config)")
	labelCommentsCmd.Flags().BoolVar(&labelClearFirst, "clear", false, "clear existing topic labels first")

	labelClearCmd.Flags().StringVar(&labelClearType, "type", "", "label type to clear (required)")
	labelClearCmd.Flags().BoolVar(&labelClearWords, "words", false, "clear word labels instead of comment labels")
	_ = labelClearCmd.MarkFlagRequired("type")

	labelCmd.AddCommand(labelCommentsCmd)
	labelCmd.AddCommand(labelPropagateCmd)
	labelCmd.AddCommand(labelClearCmd)
}

func runLabelComments(cmd *cobra.Command, args []string) error {
	endpoint := labelEndpoint
	if endpoint == "" {
		endpoint = configModelEndpoint
	}
	if endpoint == "" {
		return fmt.Errorf("no topic model endpoint; set --endpoint or model_endpoint in config")
	}

	batchSize := labelBatchSize
	if batchSize == 0 {
		batchSize = configBatchSize
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if labelClearFirst {
		n, err := store.ClearCommentLabels(types.LabelTypeTopic)
		if err != nil {
			return fmt.Errorf("clear topic labels: %w", err)
		}
		fmt.Printf("Cleared %d existing topic labels\n", n)
	}

	assigner := labeling.NewAssigner(store, labeling.NewHTTPModel(endpoint), batchSize, "")
	summary, err := assigner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("label comments: %w", err)
	}

	if flagJSON {
		return printJSON(summary)
	}
	fmt.Println("Labeling complete:")
	fmt.Printf("  Documents processed: %d\n", summary.Documents)
	fmt.Printf("  Labels created:      %d\n", summary.Labeled)
	fmt.Printf("  Duplicates ignored:  %d\n", summary.Duplicates)
	fmt.Printf("  Outliers skipped:    %d\n", summary.SkippedOutlier)
	fmt.Printf("  Unmapped skipped:    %d\n", summary.SkippedUnmap)
	fmt.Printf("  Empty ids skipped:   %d\n", summary.SkippedEmptyID)
	fmt.Printf("  Failed batches:      %d\n", summary.FailedBatches)
	return nil
}

func runLabelPropagate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := labeling.Propagate(store, "")
	if err != nil {
		return fmt.Errorf("propagate labels: %w", err)
	}

	if flagJSON {
		return printJSON(summary)
	}
	fmt.Printf("Propagated %d word-label pairs\n", summary.Inserted)
	fmt.Printf("  Unique words labeled:   %d\n", summary.UniqueWords)
	fmt.Printf("  Average topics per word: %.2f\n", summary.AvgLabelsPerWord)
	if len(summary.TopWords) > 0 {
		fmt.Println("  Top words by topic diversity:")
		for _, w := range summary.TopWords {
			fmt.Printf("    %-20s %d topics (avg confidence %.3f)\n", w.Word, w.TopicCount, w.AvgConfidence)
		}
	}
	return nil
}

func runLabelClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var n int64
	if labelClearWords {
		n, err = store.ClearWordLabels(labelClearType)
	} else {
		n, err = store.ClearCommentLabels(labelClearType)
	}
	if err != nil {
		return fmt.Errorf("clear labels: %w", err)
	}

	target := "comment"
	if labelClearWords {
		target = "word"
	}
	fmt.Printf("Cleared %d %s labels of type %q\n", n, target, labelClearType)
	return nil
}

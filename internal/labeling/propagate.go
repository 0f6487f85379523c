package labeling

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lexmesh/wordloom/internal/sqlite"
	"github.com/lexmesh/wordloom/pkg/types"
)

// PropagateStore is the store surface the propagation job needs.
type PropagateStore interface {
	PropagateTopicLabels(labeledBy string) (int64, error)
	UniqueLabeledWords(labelType string) (int, error)
	AvgLabelsPerWord(labelType string) (float64, error)
	TopWordsByTopicDiversity(limit int) ([]sqlite.WordDiversityStat, error)
}

// PropagateSummary reports one propagation run and the state of the derived
// view afterwards.
type PropagateSummary struct {
	Inserted         int64 // new word-label rows this run
	UniqueWords      int   // distinct words with topic labels
	AvgLabelsPerWord float64
	TopWords         []sqlite.WordDiversityStat
}

// Propagate derives word labels from comment labels: every word of a
// labeled content inherits that content's topic labels, as a set union.
// Running twice on an unchanged label store inserts zero rows the second
// time. An empty labeledBy is replaced with a generated run id.
func Propagate(store PropagateStore, labeledBy string) (PropagateSummary, error) {
	var summary PropagateSummary

	if labeledBy == "" {
		labeledBy = "run_" + uuid.NewString()
	}

	inserted, err := store.PropagateTopicLabels(labeledBy)
	if err != nil {
		return summary, err
	}
	summary.Inserted = inserted

	if summary.UniqueWords, err = store.UniqueLabeledWords(types.LabelTypeTopic); err != nil {
		return summary, fmt.Errorf("count labeled words: %w", err)
	}
	if summary.AvgLabelsPerWord, err = store.AvgLabelsPerWord(types.LabelTypeTopic); err != nil {
		return summary, fmt.Errorf("average labels per word: %w", err)
	}
	if summary.TopWords, err = store.TopWordsByTopicDiversity(10); err != nil {
		return summary, fmt.Errorf("rank words by diversity: %w", err)
	}

	return summary, nil
}

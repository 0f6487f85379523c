package labeling

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lexmesh/wordloom/pkg/types"
)

// minDocumentTokens excludes very short contents from topic assignment.
const minDocumentTokens = 5

// AssignStore is the store surface the topic-assignment job needs.
type AssignStore interface {
	CountDocuments(minTokens int) (int, error)
	DocumentBatch(offset, limit, minTokens int) ([]types.Document, error)
	TopicByExternalID(externalID int) (*types.TaxonomyNode, error)
	InsertCommentLabel(l *types.CommentLabel) (bool, error)
}

// AssignSummary reports what one topic-assignment run did. Skips are
// counted here, never surfaced as errors.
type AssignSummary struct {
	Documents      int // documents sent to the model
	Labeled        int // labels actually inserted
	Duplicates     int // inserts ignored by the conflict policy
	SkippedOutlier int // predictions in the outlier cluster
	SkippedUnmap   int // external ids with no taxonomy mapping
	SkippedEmptyID int // documents with a blank content id
	FailedBatches  int // batches lost to model failures
}

// Assigner runs the topic-assignment job: page documents out of the token
// index, call the topic model, map predictions into the taxonomy, and
// insert comment labels additively.
type Assigner struct {
	store     AssignStore
	model     TopicModel
	batchSize int
	labeledBy string
}

// NewAssigner creates an assignment job. A zero batchSize falls back to the
// default; an empty labeledBy is replaced with a generated run id so every
// label row carries provenance.
func NewAssigner(store AssignStore, model TopicModel, batchSize int, labeledBy string) *Assigner {
	if batchSize <= 0 {
		batchSize = types.DefaultBatchSize
	}
	if labeledBy == "" {
		labeledBy = "run_" + uuid.NewString()
	}
	return &Assigner{
		store:     store,
		model:     model,
		batchSize: batchSize,
		labeledBy: labeledBy,
	}
}

// LabeledBy returns the provenance identity stamped on this run's labels.
func (a *Assigner) LabeledBy() string {
	return a.labeledBy
}

// Run executes the job to completion. A model failure on one batch is
// counted and the run continues with the next batch; re-running after a
// crash only adds the labels the first run missed.
func (a *Assigner) Run(ctx context.Context) (AssignSummary, error) {
	var summary AssignSummary

	total, err := a.store.CountDocuments(minDocumentTokens)
	if err != nil {
		return summary, fmt.Errorf("count documents: %w", err)
	}

	for offset := 0; offset < total; offset += a.batchSize {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		docs, err := a.store.DocumentBatch(offset, a.batchSize, minDocumentTokens)
		if err != nil {
			return summary, fmt.Errorf("fetch document batch at %d: %w", offset, err)
		}
		if len(docs) == 0 {
			break
		}

		texts := make([]string, len(docs))
		for i, d := range docs {
			texts[i] = d.Text
		}

		preds, err := a.model.Predict(ctx, texts)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return summary, err
			}
			summary.FailedBatches++
			summary.Documents += len(docs)
			continue
		}

		summary.Documents += len(docs)
		for i, pred := range preds {
			if err := a.applyPrediction(docs[i].StoryID, pred, &summary); err != nil {
				return summary, err
			}
		}
	}

	return summary, nil
}

// applyPrediction records one model prediction, or counts why it was
// skipped. Only store failures are errors.
func (a *Assigner) applyPrediction(storyID string, pred Prediction, summary *AssignSummary) error {
	if pred.TopicID == OutlierTopicID {
		summary.SkippedOutlier++
		return nil
	}
	if strings.TrimSpace(storyID) == "" {
		summary.SkippedEmptyID++
		return nil
	}

	node, err := a.store.TopicByExternalID(pred.TopicID)
	if err != nil {
		if errors.Is(err, types.ErrUnmapped) {
			// Expected when the taxonomy was built against a different
			// model generation; skip, count, continue.
			summary.SkippedUnmap++
			return nil
		}
		return fmt.Errorf("map external topic %d: %w", pred.TopicID, err)
	}

	added, err := a.store.InsertCommentLabel(&types.CommentLabel{
		CommentID:  storyID,
		LabelType:  types.LabelTypeTopic,
		TopicID:    node.ID,
		Confidence: pred.Confidence,
		Source:     types.SourceTopicModel,
		LabeledBy:  a.labeledBy,
	})
	if err != nil {
		return fmt.Errorf("insert label for %s: %w", storyID, err)
	}
	if added {
		summary.Labeled++
	} else {
		summary.Duplicates++
	}
	return nil
}

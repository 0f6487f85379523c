package types

import (
	"errors"
	"time"
)

// Label types recorded against comments and words.
const (
	LabelTypeTopic     = "topic"
	LabelTypeSentiment = "sentiment"
	LabelTypeEmotion   = "emotion"
)

// Label sources record which process produced a label.
const (
	SourceTopicModel = "bertopic"
	SourcePropagated = "comment_propagated"
	SourceExternal   = "external"
)

// Label errors.
var (
	ErrInvalidLabel     = errors.New("invalid label")
	ErrInvalidLabelType = errors.New("invalid label type")
	ErrEmptyContentID   = errors.New("content id must not be empty")
	ErrEmptyWord        = errors.New("word must not be empty")
)

// CommentLabel records one label assigned to a comment or story. For topic
// labels the taxonomy reference carries the value and LabelValue is empty;
// for every other label type LabelValue carries the value and TopicID is
// zero. Exactly one of the two is ever populated.
type CommentLabel struct {
	ID         int64     // Row id, assigned on insert.
	CommentID  string    // External content identifier.
	LabelType  string    // One of the LabelType constants.
	LabelValue string    // Discrete value for non-topic labels.
	TopicID    int64     // Tier-3 taxonomy node id for topic labels.
	Confidence float64   // Model confidence in [0, 1].
	Source     string    // One of the Source constants.
	LabeledAt  time.Time // Timestamp of labeling.
	LabeledBy  string    // Labeler identity (model name or run id).
}

// Validate enforces the topic/value exclusivity invariant and the presence
// of the required provenance fields.
func (l *CommentLabel) Validate() error {
	if l.CommentID == "" {
		return ErrEmptyContentID
	}
	if l.LabelType == "" {
		return ErrInvalidLabelType
	}
	if l.Source == "" {
		return ErrInvalidLabel
	}
	if l.LabelType == LabelTypeTopic {
		if l.TopicID == 0 || l.LabelValue != "" {
			return ErrInvalidLabel
		}
		return nil
	}
	if l.TopicID != 0 || l.LabelValue == "" {
		return ErrInvalidLabel
	}
	return nil
}

// WordLabel records one label assigned to a lowercased word. Uniqueness is
// on (word, label_type, label_value): re-deriving an existing triple is a
// no-op, never an update.
type WordLabel struct {
	ID         int64     // Row id, assigned on insert.
	Word       string    // Lowercased word.
	LabelType  string    // One of the LabelType constants.
	LabelValue string    // Label value (tier-3 topic name for topic labels).
	Confidence float64   // Confidence inherited from the deriving label.
	Source     string    // One of the Source constants.
	LabeledAt  time.Time // Timestamp of labeling.
	LabeledBy  string    // Labeler identity.
	Notes      string    // Free-form provenance notes.
}

// Validate checks the required word-label fields.
func (l *WordLabel) Validate() error {
	if l.Word == "" {
		return ErrEmptyWord
	}
	if l.LabelType == "" {
		return ErrInvalidLabelType
	}
	if l.LabelValue == "" || l.Source == "" {
		return ErrInvalidLabel
	}
	return nil
}

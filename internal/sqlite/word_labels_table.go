// This file implements the word label store and the propagation join that
// derives word labels from comment labels.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lexmesh/wordloom/pkg/types"
)

// InsertWordLabel inserts one word label, skipping on conflict with the
// (word, label_type, label_value) uniqueness. Re-deriving an existing pair
// is a no-op, not an update. The boolean reports whether a row was added.
func (s *Store) InsertWordLabel(l *types.WordLabel) (bool, error) {
	if err := l.Validate(); err != nil {
		return false, err
	}

	labeledAt := l.LabeledAt
	if labeledAt.IsZero() {
		labeledAt = time.Now()
	}

	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO word_labels
         (word, label_type, label_value, confidence, source, labeled_at, labeled_by, notes)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Word, l.LabelType, l.LabelValue, l.Confidence,
		l.Source, timestamp(labeledAt), l.LabeledBy, l.Notes,
	)
	if err != nil {
		return false, fmt.Errorf("inserting word label for %q: %w", l.Word, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking word label insert: %w", err)
	}
	return n > 0, nil
}

// PropagateTopicLabels projects every comment-level topic label onto the
// words of the labeled content: one set-union statement joining the token
// index to comment labels to the taxonomy, skip-on-conflict. Re-running
// after new comment labels arrive only adds rows; a crash mid-run leaves a
// partial union recoverable by re-running. Returns rows inserted.
func (s *Store) PropagateTopicLabels(labeledBy string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO word_labels
         (word, label_type, label_value, confidence, source, labeled_at, labeled_by, notes)
         SELECT DISTINCT
             wt.word_lower,
             ?,
             t3.topic_name,
             cl.confidence,
             ?,
             ?,
             ?,
             'Inherited from comment: ' || cl.comment_id
         FROM word_tokens wt
         JOIN comment_labels cl ON wt.story_id = cl.comment_id
         JOIN topic_taxonomy t3 ON cl.topic_id = t3.id
         WHERE cl.label_type = ?`,
		types.LabelTypeTopic, types.SourcePropagated,
		timestamp(time.Now()), labeledBy, types.LabelTypeTopic,
	)
	if err != nil {
		return 0, fmt.Errorf("propagating labels to words: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking propagation insert: %w", err)
	}
	return n, nil
}

// FetchWordLabels returns labels for one word, or for all words of a label
// type when word is empty. A limit of 0 means no limit.
func (s *Store) FetchWordLabels(word, labelType string, limit int) ([]*types.WordLabel, error) {
	query := `SELECT id, word, label_type, label_value, confidence, source, labeled_at, labeled_by, notes
              FROM word_labels`
	var conditions []string
	var args []any
	if word != "" {
		conditions = append(conditions, "word = ?")
		args = append(args, word)
	}
	if labelType != "" {
		conditions = append(conditions, "label_type = ?")
		args = append(args, labelType)
	}
	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY word ASC, label_value ASC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching word labels: %w", err)
	}
	defer rows.Close()

	labels := []*types.WordLabel{}
	for rows.Next() {
		l, err := hydrateWordLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating word label: %w", err)
		}
		labels = append(labels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating word labels: %w", err)
	}
	return labels, nil
}

// CountWordLabels returns the number of word labels of a type, or all word
// labels when labelType is empty.
func (s *Store) CountWordLabels(labelType string) (int, error) {
	query := "SELECT COUNT(*) FROM word_labels"
	var args []any
	if labelType != "" {
		query += " WHERE label_type = ?"
		args = append(args, labelType)
	}
	var n int
	if err := s.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting word labels: %w", err)
	}
	return n, nil
}

// ClearWordLabels deletes all word labels of a type, the only deletion path
// for derived rows. Returns the number of rows removed.
func (s *Store) ClearWordLabels(labelType string) (int64, error) {
	if labelType == "" {
		return 0, types.ErrInvalidLabelType
	}
	res, err := s.db.Exec("DELETE FROM word_labels WHERE label_type = ?", labelType)
	if err != nil {
		return 0, fmt.Errorf("clearing word labels: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking word label clear: %w", err)
	}
	return n, nil
}

// UniqueLabeledWords returns the number of distinct words carrying at least
// one label of the given type.
func (s *Store) UniqueLabeledWords(labelType string) (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(DISTINCT word) FROM word_labels WHERE label_type = ?",
		labelType,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting unique labeled words: %w", err)
	}
	return n, nil
}

// AvgLabelsPerWord returns the mean number of labels of the given type per
// distinct word, or 0 when no words are labeled.
func (s *Store) AvgLabelsPerWord(labelType string) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT AVG(label_count) FROM (
             SELECT COUNT(*) AS label_count
             FROM word_labels
             WHERE label_type = ?
             GROUP BY word
         )`,
		labelType,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("averaging labels per word: %w", err)
	}
	return avg.Float64, nil
}

// WordDiversityStat is one row of the topic-diversity ranking.
type WordDiversityStat struct {
	Word          string
	TopicCount    int
	AvgConfidence float64
}

// TopWordsByTopicDiversity ranks words by the number of distinct topic
// labels they carry.
func (s *Store) TopWordsByTopicDiversity(limit int) ([]WordDiversityStat, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT word, COUNT(DISTINCT label_value), ROUND(AVG(confidence), 3)
         FROM word_labels
         WHERE label_type = ?
         GROUP BY word
         ORDER BY COUNT(DISTINCT label_value) DESC, word ASC
         LIMIT ?`,
		types.LabelTypeTopic, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying topic diversity: %w", err)
	}
	defer rows.Close()

	stats := []WordDiversityStat{}
	for rows.Next() {
		var st WordDiversityStat
		if err := rows.Scan(&st.Word, &st.TopicCount, &st.AvgConfidence); err != nil {
			return nil, fmt.Errorf("scanning topic diversity: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating topic diversity: %w", err)
	}
	return stats, nil
}

func hydrateWordLabel(rows *sql.Rows) (*types.WordLabel, error) {
	var l types.WordLabel
	var confidence sql.NullFloat64
	var labeledBy, notes sql.NullString
	var labeledAt string
	if err := rows.Scan(
		&l.ID, &l.Word, &l.LabelType, &l.LabelValue, &confidence,
		&l.Source, &labeledAt, &labeledBy, &notes,
	); err != nil {
		return nil, err
	}
	l.Confidence = confidence.Float64
	l.LabeledBy = labeledBy.String
	l.Notes = notes.String
	if t, err := time.Parse(time.RFC3339, labeledAt); err == nil {
		l.LabeledAt = t
	}
	return &l, nil
}

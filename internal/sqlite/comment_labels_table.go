// This file implements the comment label store: additive insert-or-ignore
// writes, fetches, explicit clears, and the tier-1 rollup statistics.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lexmesh/wordloom/pkg/types"
)

// InsertCommentLabel inserts one comment label with conflict policy "do
// nothing": an existing label for the same key is never overwritten. The
// boolean reports whether a row was actually added, so callers can count
// duplicates separately from inserts.
func (s *Store) InsertCommentLabel(l *types.CommentLabel) (bool, error) {
	if err := l.Validate(); err != nil {
		return false, err
	}

	labeledAt := l.LabeledAt
	if labeledAt.IsZero() {
		labeledAt = time.Now()
	}

	var labelValue, topicID any
	if l.LabelType == types.LabelTypeTopic {
		topicID = l.TopicID
	} else {
		labelValue = l.LabelValue
	}

	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO comment_labels
         (comment_id, label_type, label_value, topic_id, confidence, source, labeled_at, labeled_by)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.CommentID, l.LabelType, labelValue, topicID,
		l.Confidence, l.Source, timestamp(labeledAt), l.LabeledBy,
	)
	if err != nil {
		return false, fmt.Errorf("inserting comment label for %s: %w", l.CommentID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking comment label insert: %w", err)
	}
	return n > 0, nil
}

// FetchCommentLabels returns labels for one comment, or for all comments of
// a label type when commentID is empty. A limit of 0 means no limit.
func (s *Store) FetchCommentLabels(commentID, labelType string, limit int) ([]*types.CommentLabel, error) {
	query := `SELECT id, comment_id, label_type, label_value, topic_id, confidence, source, labeled_at, labeled_by
              FROM comment_labels`
	var conditions []string
	var args []any
	if commentID != "" {
		conditions = append(conditions, "comment_id = ?")
		args = append(args, commentID)
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
	query += " ORDER BY id ASC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching comment labels: %w", err)
	}
	defer rows.Close()

	labels := []*types.CommentLabel{}
	for rows.Next() {
		l, err := hydrateCommentLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating comment label: %w", err)
		}
		labels = append(labels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comment labels: %w", err)
	}
	return labels, nil
}

// CountCommentLabels returns the number of comment labels of a type, or all
// labels when labelType is empty.
func (s *Store) CountCommentLabels(labelType string) (int, error) {
	query := "SELECT COUNT(*) FROM comment_labels"
	var args []any
	if labelType != "" {
		query += " WHERE label_type = ?"
		args = append(args, labelType)
	}
	var n int
	if err := s.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting comment labels: %w", err)
	}
	return n, nil
}

// ClearCommentLabels deletes all comment labels of a type. Labels are never
// updated in place; a full clear preceding a re-run is the only deletion
// path. Returns the number of rows removed.
func (s *Store) ClearCommentLabels(labelType string) (int64, error) {
	if labelType == "" {
		return 0, types.ErrInvalidLabelType
	}
	res, err := s.db.Exec("DELETE FROM comment_labels WHERE label_type = ?", labelType)
	if err != nil {
		return 0, fmt.Errorf("clearing comment labels: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking comment label clear: %w", err)
	}
	return n, nil
}

// DomainLabelStat is one row of the tier-1 label distribution rollup.
type DomainLabelStat struct {
	Domain        string
	LabelCount    int
	AvgConfidence float64
}

// LabelDistributionByDomain rolls topic labels up to their tier-1 domain by
// walking the taxonomy twice (topic -> category -> domain).
func (s *Store) LabelDistributionByDomain() ([]DomainLabelStat, error) {
	rows, err := s.db.Query(
		`SELECT t1.topic_name, COUNT(cl.id), ROUND(AVG(cl.confidence), 3)
         FROM comment_labels cl
         JOIN topic_taxonomy t3 ON cl.topic_id = t3.id
         JOIN topic_taxonomy t2 ON t3.parent_id = t2.id
         JOIN topic_taxonomy t1 ON t2.parent_id = t1.id
         WHERE t1.tier = ? AND cl.label_type = ?
         GROUP BY t1.topic_name
         ORDER BY COUNT(cl.id) DESC`,
		types.TierDomain, types.LabelTypeTopic,
	)
	if err != nil {
		return nil, fmt.Errorf("querying label distribution: %w", err)
	}
	defer rows.Close()

	stats := []DomainLabelStat{}
	for rows.Next() {
		var st DomainLabelStat
		if err := rows.Scan(&st.Domain, &st.LabelCount, &st.AvgConfidence); err != nil {
			return nil, fmt.Errorf("scanning label distribution: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating label distribution: %w", err)
	}
	return stats, nil
}

func hydrateCommentLabel(rows *sql.Rows) (*types.CommentLabel, error) {
	var l types.CommentLabel
	var labelValue, labeledBy sql.NullString
	var topicID sql.NullInt64
	var confidence sql.NullFloat64
	var labeledAt string
	if err := rows.Scan(
		&l.ID, &l.CommentID, &l.LabelType, &labelValue, &topicID,
		&confidence, &l.Source, &labeledAt, &labeledBy,
	); err != nil {
		return nil, err
	}
	l.LabelValue = labelValue.String
	l.TopicID = topicID.Int64
	l.Confidence = confidence.Float64
	l.LabeledBy = labeledBy.String
	if t, err := time.Parse(time.RFC3339, labeledAt); err == nil {
		l.LabeledAt = t
	}
	return &l, nil
}

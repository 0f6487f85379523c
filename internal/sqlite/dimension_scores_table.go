// This file implements storage for externally produced dimension scores and
// the word-level dimension rollup. Scoring models are external
// collaborators; wordloom only materializes and joins their output.
package sqlite

import (
	"fmt"
	"time"

	"github.com/lexmesh/wordloom/pkg/types"
)

// PutDimensionScores stores a batch of pre-computed scores, one per
// (content, dimension) pair, skip-on-conflict. Scores with an empty content
// id are skipped silently; an unknown dimension name fails the batch.
// Returns the number of rows inserted.
func (s *Store) PutDimensionScores(scores []types.DimensionScore) (int, error) {
	if len(scores) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning score transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT OR IGNORE INTO dimension_scores (content_id, dimension, score, scored_at) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("preparing score insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, sc := range scores {
		if sc.ContentID == "" {
			continue
		}
		if !types.IsValidDimension(sc.Dimension) {
			return 0, fmt.Errorf("dimension %q: %w", sc.Dimension, types.ErrUnknownDimension)
		}
		scoredAt := sc.ScoredAt
		if scoredAt.IsZero() {
			scoredAt = time.Now()
		}
		res, err := stmt.Exec(sc.ContentID, sc.Dimension, sc.Score, timestamp(scoredAt))
		if err != nil {
			return 0, fmt.Errorf("inserting score for %s/%s: %w", sc.ContentID, sc.Dimension, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing score transaction: %w", err)
	}
	return inserted, nil
}

// CountDimensionScores returns the number of stored scores for a dimension,
// or all scores when dimension is empty.
func (s *Store) CountDimensionScores(dimension string) (int, error) {
	query := "SELECT COUNT(*) FROM dimension_scores"
	var args []any
	if dimension != "" {
		query += " WHERE dimension = ?"
		args = append(args, dimension)
	}
	var n int
	if err := s.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting dimension scores: %w", err)
	}
	return n, nil
}

// WordDimensionStat is one row of the words-by-dimension rollup.
type WordDimensionStat struct {
	Word      string
	Frequency int
	AvgScore  float64
}

// WordsByDimension returns words whose containing contents score within
// [min, max] on one dimension, ranked by frequency. Nil bounds are open.
func (s *Store) WordsByDimension(dimension string, min, max *float64, limit int) ([]WordDimensionStat, error) {
	if !types.IsValidDimension(dimension) {
		return nil, fmt.Errorf("dimension %q: %w", dimension, types.ErrUnknownDimension)
	}
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT wt.word_lower, COUNT(*) AS frequency, AVG(ds.score)
              FROM word_tokens wt
              JOIN dimension_scores ds ON wt.story_id = ds.content_id
              WHERE ds.dimension = ?`
	args := []any{dimension}
	if min != nil {
		query += " AND ds.score >= ?"
		args = append(args, *min)
	}
	if max != nil {
		query += " AND ds.score <= ?"
		args = append(args, *max)
	}
	query += ` GROUP BY wt.word_lower
               ORDER BY frequency DESC, wt.word_lower ASC
               LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying words by dimension: %w", err)
	}
	defer rows.Close()

	stats := []WordDimensionStat{}
	for rows.Next() {
		var st WordDimensionStat
		if err := rows.Scan(&st.Word, &st.Frequency, &st.AvgScore); err != nil {
			return nil, fmt.Errorf("scanning words by dimension: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating words by dimension: %w", err)
	}
	return stats, nil
}

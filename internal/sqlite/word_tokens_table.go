// This file implements the word token index: bulk token loading and the
// document reconstruction that feeds the topic-assignment job.
package sqlite

import (
	"fmt"
	"strings"

	"github.com/lexmesh/wordloom/pkg/types"
)

// AddWordTokens records the positioned tokens of one story or comment.
// Tokens are lowercased for the word_lower join column. An empty word list
// is a zero-count no-op; an empty story id is skipped per the error policy.
// Returns the number of tokens inserted.
func (s *Store) AddWordTokens(storyID string, words []string) (int, error) {
	if strings.TrimSpace(storyID) == "" {
		return 0, nil
	}
	if len(words) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning token transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT OR IGNORE INTO word_tokens (story_id, position, word_text, word_lower) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("preparing token insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i, w := range words {
		if w == "" {
			continue
		}
		res, err := stmt.Exec(storyID, i, w, strings.ToLower(w))
		if err != nil {
			return 0, fmt.Errorf("inserting token %d of %s: %w", i, storyID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing token transaction: %w", err)
	}
	return inserted, nil
}

// CountDocuments returns the number of stories whose token count exceeds
// minTokens. Very short contents are excluded from topic assignment the
// same way everywhere.
func (s *Store) CountDocuments(minTokens int) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM (
             SELECT story_id FROM word_tokens GROUP BY story_id HAVING COUNT(*) > ?
         )`,
		minTokens,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// DocumentBatch reconstructs one page of documents from the token index:
// tokens joined by spaces in position order, one document per story, ordered
// by story id for stable paging. Stories with minTokens or fewer tokens are
// skipped.
func (s *Store) DocumentBatch(offset, limit, minTokens int) ([]types.Document, error) {
	idRows, err := s.db.Query(
		`SELECT story_id, COUNT(*)
         FROM word_tokens
         GROUP BY story_id
         HAVING COUNT(*) > ?
         ORDER BY story_id
         LIMIT ? OFFSET ?`,
		minTokens, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("paging document ids: %w", err)
	}
	defer idRows.Close()

	docs := []types.Document{}
	index := make(map[string]int)
	for idRows.Next() {
		var id string
		var count int
		if err := idRows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("scanning document id: %w", err)
		}
		index[id] = len(docs)
		docs = append(docs, types.Document{StoryID: id, TokenCount: count})
	}
	if err := idRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document ids: %w", err)
	}
	if len(docs) == 0 {
		return docs, nil
	}

	// Assemble text in Go rather than relying on aggregate ordering.
	placeholders := strings.Repeat("?,", len(docs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(docs))
	for id, i := range index {
		args[i] = id
	}

	rows, err := s.db.Query(
		fmt.Sprintf(
			`SELECT story_id, word_text FROM word_tokens
             WHERE story_id IN (%s)
             ORDER BY story_id, position`, placeholders),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching document tokens: %w", err)
	}
	defer rows.Close()

	builders := make([]strings.Builder, len(docs))
	for rows.Next() {
		var id, word string
		if err := rows.Scan(&id, &word); err != nil {
			return nil, fmt.Errorf("scanning document token: %w", err)
		}
		i := index[id]
		if builders[i].Len() > 0 {
			builders[i].WriteByte(' ')
		}
		builders[i].WriteString(word)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document tokens: %w", err)
	}

	for i := range docs {
		docs[i].Text = builders[i].String()
	}
	return docs, nil
}

// FetchWordTokens returns the tokens of one story in position order.
func (s *Store) FetchWordTokens(storyID string) ([]types.WordToken, error) {
	rows, err := s.db.Query(
		`SELECT story_id, position, word_text, word_lower
         FROM word_tokens
         WHERE story_id = ?
         ORDER BY position`,
		storyID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching tokens for %s: %w", storyID, err)
	}
	defer rows.Close()

	tokens := []types.WordToken{}
	for rows.Next() {
		var tok types.WordToken
		if err := rows.Scan(&tok.StoryID, &tok.Position, &tok.Text, &tok.Lower); err != nil {
			return nil, fmt.Errorf("scanning token: %w", err)
		}
		tokens = append(tokens, tok)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tokens: %w", err)
	}
	return tokens, nil
}

// CountTokens returns the total number of token rows.
func (s *Store) CountTokens() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM word_tokens").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting tokens: %w", err)
	}
	return n, nil
}

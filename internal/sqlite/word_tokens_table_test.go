// Unit tests for the word token index and document reconstruction.
package sqlite

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWordTokens(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, s *Store)
	}{
		{
			name: "inserts positioned tokens with lowercase join column",
			check: func(t *testing.T, s *Store) {
				n, err := s.AddWordTokens("hn_1", []string{"Hello", "SQLite", "world"})
				require.NoError(t, err)
				assert.Equal(t, 3, n)

				docs, err := s.DocumentBatch(0, 10, 0)
				require.NoError(t, err)
				require.Len(t, docs, 1)
				assert.Equal(t, "Hello SQLite world", docs[0].Text)
			},
		},
		{
			name: "empty story id is a no-op",
			check: func(t *testing.T, s *Store) {
				n, err := s.AddWordTokens("  ", []string{"hello"})
				require.NoError(t, err)
				assert.Zero(t, n)
			},
		},
		{
			name: "empty word list is a no-op",
			check: func(t *testing.T, s *Store) {
				n, err := s.AddWordTokens("hn_1", nil)
				require.NoError(t, err)
				assert.Zero(t, n)
			},
		},
		{
			name: "re-importing the same story adds nothing",
			check: func(t *testing.T, s *Store) {
				_, err := s.AddWordTokens("hn_1", []string{"hello", "world"})
				require.NoError(t, err)

				n, err := s.AddWordTokens("hn_1", []string{"hello", "world"})
				require.NoError(t, err)
				assert.Zero(t, n)

				total, err := s.CountTokens()
				require.NoError(t, err)
				assert.Equal(t, 2, total)
			},
		},
		{
			name: "empty words within the list are skipped",
			check: func(t *testing.T, s *Store) {
				n, err := s.AddWordTokens("hn_1", []string{"hello", "", "world"})
				require.NoError(t, err)
				assert.Equal(t, 2, n)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, setupTestStore(t))
		})
	}
}

func TestFetchWordTokens(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.AddWordTokens("hn_1", []string{"Hello", "World"})
	require.NoError(t, err)

	tokens, err := store.FetchWordTokens("hn_1")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, 0, tokens[0].Position)
	assert.Equal(t, "Hello", tokens[0].Text)
	assert.Equal(t, "hello", tokens[0].Lower)
	assert.Equal(t, "World", tokens[1].Text)

	tokens, err = store.FetchWordTokens("hn_missing")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestCountDocuments(t *testing.T) {
	store := setupTestStore(t)

	// One story above the threshold, one exactly at it, one below.
	_, err := store.AddWordTokens("hn_long", []string{"a", "b", "c", "d", "e", "f"})
	require.NoError(t, err)
	_, err = store.AddWordTokens("hn_edge", []string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)
	_, err = store.AddWordTokens("hn_short", []string{"a", "b"})
	require.NoError(t, err)

	// The threshold is strict: exactly minTokens tokens does not qualify.
	n, err := store.CountDocuments(5)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.CountDocuments(0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDocumentBatch(t *testing.T) {
	store := setupTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := store.AddWordTokens(
			fmt.Sprintf("hn_%02d", i),
			[]string{"word", "number", fmt.Sprintf("%d", i)},
		)
		require.NoError(t, err)
	}

	t.Run("pages documents in story-id order", func(t *testing.T) {
		docs, err := store.DocumentBatch(0, 2, 0)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "hn_00", docs[0].StoryID)
		assert.Equal(t, "hn_01", docs[1].StoryID)
		assert.Equal(t, 3, docs[0].TokenCount)

		docs, err = store.DocumentBatch(4, 2, 0)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "hn_04", docs[0].StoryID)
	})

	t.Run("reconstructs text in token position order", func(t *testing.T) {
		docs, err := store.DocumentBatch(0, 1, 0)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "word number 0", docs[0].Text)
	})

	t.Run("offset past the end returns empty", func(t *testing.T) {
		docs, err := store.DocumentBatch(100, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("minTokens filters short documents", func(t *testing.T) {
		docs, err := store.DocumentBatch(0, 10, 3)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

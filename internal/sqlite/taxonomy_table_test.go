// Unit tests for taxonomy seeding, external-id mapping, and lineage.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexmesh/wordloom/pkg/types"
)

func TestSeedTaxonomy(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, s *Store)
	}{
		{
			name: "seeds all three tiers with correct counts",
			check: func(t *testing.T, s *Store) {
				result := seedTestTaxonomy(t, s)
				assert.Equal(t, 2, result.Tier1)
				assert.Equal(t, 3, result.Tier2)
				assert.Equal(t, 4, result.Tier3)
			},
		},
		{
			name: "tier-3 names carry the external id prefix",
			check: func(t *testing.T, s *Store) {
				seedTestTaxonomy(t, s)
				topics, err := s.FetchTaxonomy(types.TierTopic)
				require.NoError(t, err)
				require.Len(t, topics, 4)

				names := make(map[string]bool)
				for _, n := range topics {
					names[n.Name] = true
				}
				assert.True(t, names["Topic_0: compilers"])
				assert.True(t, names["Topic_3: remote work"])
			},
		},
		{
			name: "tier-1 nodes have no parent, deeper tiers do",
			check: func(t *testing.T, s *Store) {
				seedTestTaxonomy(t, s)
				all, err := s.FetchTaxonomy(0)
				require.NoError(t, err)
				require.Len(t, all, 9)
				for _, n := range all {
					if n.Tier == types.TierDomain {
						assert.Nil(t, n.ParentID, "tier-1 node %q should have no parent", n.Name)
					} else {
						assert.NotNil(t, n.ParentID, "node %q should have a parent", n.Name)
					}
					assert.NoError(t, n.Validate())
				}
			},
		},
		{
			name: "re-seeding a populated taxonomy is a no-op",
			check: func(t *testing.T, s *Store) {
				seedTestTaxonomy(t, s)
				result, err := s.SeedTaxonomy(testTree())
				require.NoError(t, err)
				assert.True(t, result.Skipped)
				assert.Zero(t, result.Tier1)

				all, err := s.FetchTaxonomy(0)
				require.NoError(t, err)
				assert.Len(t, all, 9)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, setupTestStore(t))
		})
	}
}

func TestTopicByExternalID(t *testing.T) {
	store := setupTestStore(t)
	seedTestTaxonomy(t, store)

	t.Run("maps a known external id to its tier-3 node", func(t *testing.T) {
		node, err := store.TopicByExternalID(1)
		require.NoError(t, err)
		assert.Equal(t, "Topic_1: databases", node.Name)
		assert.Equal(t, types.TierTopic, node.Tier)
	})

	t.Run("returns ErrUnmapped for an unknown external id", func(t *testing.T) {
		_, err := store.TopicByExternalID(99)
		assert.ErrorIs(t, err, types.ErrUnmapped)
	})
}

func TestNodeByID(t *testing.T) {
	store := setupTestStore(t)
	seedTestTaxonomy(t, store)

	id := topicNodeID(t, store, 0)
	node, err := store.NodeByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Topic_0: compilers", node.Name)

	_, err = store.NodeByID(12345)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestFetchTaxonomy(t *testing.T) {
	store := setupTestStore(t)
	seedTestTaxonomy(t, store)

	t.Run("filters by tier", func(t *testing.T) {
		domains, err := store.FetchTaxonomy(types.TierDomain)
		require.NoError(t, err)
		require.Len(t, domains, 2)
		// Ordered by name within the tier.
		assert.Equal(t, "Society", domains[0].Name)
		assert.Equal(t, "Technology", domains[1].Name)
	})

	t.Run("tier zero returns everything", func(t *testing.T) {
		all, err := store.FetchTaxonomy(0)
		require.NoError(t, err)
		assert.Len(t, all, 9)
	})

	t.Run("rejects an out-of-range tier", func(t *testing.T) {
		_, err := store.FetchTaxonomy(4)
		assert.ErrorIs(t, err, types.ErrInvalidTier)
	})
}

func TestLineage(t *testing.T) {
	store := setupTestStore(t)
	seedTestTaxonomy(t, store)

	domain, category, topic, err := store.Lineage(topicNodeID(t, store, 2))
	require.NoError(t, err)
	assert.Equal(t, "Technology", domain)
	assert.Equal(t, "Hardware", category)
	assert.Equal(t, "Topic_2: keyboards", topic)

	_, _, _, err = store.Lineage(12345)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

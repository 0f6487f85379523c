// Unit tests for taxonomy node validation and the external topic-id
// name convention.
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyNodeValidate(t *testing.T) {
	parent := int64(1)

	tests := []struct {
		name    string
		node    TaxonomyNode
		wantErr error
	}{
		{
			name: "valid tier-1 node without parent",
			node: TaxonomyNode{Name: "Technology", Tier: TierDomain},
		},
		{
			name: "valid tier-2 node with parent",
			node: TaxonomyNode{Name: "Programming", Tier: TierCategory, ParentID: &parent},
		},
		{
			name: "valid tier-3 node with parent",
			node: TaxonomyNode{Name: "Topic_0: compilers", Tier: TierTopic, ParentID: &parent},
		},
		{
			name:    "empty name is rejected",
			node:    TaxonomyNode{Tier: TierDomain},
			wantErr: ErrInvalidName,
		},
		{
			name:    "tier-1 node with parent is rejected",
			node:    TaxonomyNode{Name: "Technology", Tier: TierDomain, ParentID: &parent},
			wantErr: ErrInvalidParent,
		},
		{
			name:    "tier-2 node without parent is rejected",
			node:    TaxonomyNode{Name: "Programming", Tier: TierCategory},
			wantErr: ErrInvalidParent,
		},
		{
			name:    "tier-3 node without parent is rejected",
			node:    TaxonomyNode{Name: "Topic_0: compilers", Tier: TierTopic},
			wantErr: ErrInvalidParent,
		},
		{
			name:    "unknown tier is rejected",
			node:    TaxonomyNode{Name: "Technology", Tier: 4},
			wantErr: ErrInvalidTier,
		},
		{
			name:    "zero tier is rejected",
			node:    TaxonomyNode{Name: "Technology"},
			wantErr: ErrInvalidTier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTopicName(t *testing.T) {
	assert.Equal(t, "Topic_0: compilers", TopicName(0, "compilers"))
	assert.Equal(t, "Topic_42: startup funding", TopicName(42, "startup funding"))
	assert.Equal(t, "Topic_-1: outliers", TopicName(-1, "outliers"))
}

func TestParseExternalID(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID int
		wantOK bool
	}{
		{name: "standard topic name", input: "Topic_7: databases", wantID: 7, wantOK: true},
		{name: "large id", input: "Topic_1234: something", wantID: 1234, wantOK: true},
		{name: "no prefix", input: "databases", wantOK: false},
		{name: "missing colon", input: "Topic_7 databases", wantOK: false},
		{name: "non-numeric id", input: "Topic_abc: databases", wantOK: false},
		{name: "empty string", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseExternalID(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestTopicNameRoundTrip(t *testing.T) {
	name := TopicName(19, "remote work")
	id, ok := ParseExternalID(name)
	require.True(t, ok)
	assert.Equal(t, 19, id)
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDimension(t *testing.T) {
	for _, d := range Dimensions {
		assert.True(t, IsValidDimension(d), "dimension %q should be valid", d)
	}
	assert.False(t, IsValidDimension("sarcasm"))
	assert.False(t, IsValidDimension(""))
	assert.False(t, IsValidDimension("Valence"), "dimension names are case sensitive")
}

func TestDimensionScoreValidate(t *testing.T) {
	tests := []struct {
		name    string
		score   DimensionScore
		wantErr error
	}{
		{
			name:  "valid score",
			score: DimensionScore{ContentID: "hn_1", Dimension: DimensionValence, Score: 0.8},
		},
		{
			name:    "empty content id is rejected",
			score:   DimensionScore{Dimension: DimensionValence, Score: 0.8},
			wantErr: ErrEmptyContentID,
		},
		{
			name:    "unknown dimension is rejected",
			score:   DimensionScore{ContentID: "hn_1", Dimension: "sarcasm", Score: 0.8},
			wantErr: ErrUnknownDimension,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.score.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

package types

import (
	"errors"
	"time"
)

// The nine linguistic dimension axes scored by the external regression
// models. Scores arrive pre-computed; wordloom only stores and joins them.
const (
	DimensionCertainty         = "certainty"
	DimensionPronounFirst      = "pronoun_first"
	DimensionPronounCollective = "pronoun_collective"
	DimensionValence           = "valence"
	DimensionTemporalBleed     = "temporal_bleed"
	DimensionTimeCompression   = "time_compression"
	DimensionSacredProfane     = "sacred_profane"
	DimensionTemporalProximity = "temporal_proximity"
	DimensionTension           = "tension"
)

// Dimensions lists all recognized dimension names.
var Dimensions = []string{
	DimensionCertainty,
	DimensionPronounFirst,
	DimensionPronounCollective,
	DimensionValence,
	DimensionTemporalBleed,
	DimensionTimeCompression,
	DimensionSacredProfane,
	DimensionTemporalProximity,
	DimensionTension,
}

var validDimensions = func() map[string]bool {
	m := make(map[string]bool, len(Dimensions))
	for _, d := range Dimensions {
		m[d] = true
	}
	return m
}()

// ErrUnknownDimension is returned for dimension names outside the nine axes.
var ErrUnknownDimension = errors.New("unknown dimension")

// IsValidDimension reports whether name is one of the nine dimension axes.
func IsValidDimension(name string) bool {
	return validDimensions[name]
}

// DimensionScore is one externally produced score for a (content, dimension)
// pair. At most one score exists per pair.
type DimensionScore struct {
	ContentID string    // External content identifier.
	Dimension string    // One of the Dimension constants.
	Score     float64   // Continuous value on the dimension axis.
	ScoredAt  time.Time // Timestamp the score was produced.
}

// Validate checks the score against the known dimension axes.
func (s *DimensionScore) Validate() error {
	if s.ContentID == "" {
		return ErrEmptyContentID
	}
	if !IsValidDimension(s.Dimension) {
		return ErrUnknownDimension
	}
	return nil
}

package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Taxonomy tiers. The taxonomy is a static three-level tree:
// domains contain categories, categories contain topics.
const (
	TierDomain   = 1
	TierCategory = 2
	TierTopic    = 3
)

// Taxonomy errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidName   = errors.New("invalid name")
	ErrInvalidTier   = errors.New("tier must be 1, 2, or 3")
	ErrInvalidParent = errors.New("invalid parent reference")
	ErrUnmapped      = errors.New("external topic id has no taxonomy mapping")
)

// TaxonomyNode is a named category at one of the three hierarchy levels.
// Tier-1 nodes have no parent; tier-2 and tier-3 nodes reference the node
// one tier up.
type TaxonomyNode struct {
	ID        int64     // Row id, assigned on insert.
	Name      string    // Unique across the whole taxonomy.
	Tier      int       // One of the Tier constants.
	ParentID  *int64    // Nil for tier-1 nodes.
	CreatedAt time.Time // Timestamp of creation.
}

// Validate checks structural invariants: a recognized tier, a non-empty
// name, no parent on tier-1 nodes, and a parent on tier-2/3 nodes.
func (n *TaxonomyNode) Validate() error {
	if n.Name == "" {
		return ErrInvalidName
	}
	switch n.Tier {
	case TierDomain:
		if n.ParentID != nil {
			return ErrInvalidParent
		}
	case TierCategory, TierTopic:
		if n.ParentID == nil {
			return ErrInvalidParent
		}
	default:
		return ErrInvalidTier
	}
	return nil
}

// TopicName composes the stored tier-3 node name for a topic discovered by
// the external topic model. The numeric prefix is what TopicByExternalID
// matches on, so the format must stay stable across corpora.
func TopicName(externalID int, name string) string {
	return fmt.Sprintf("Topic_%d: %s", externalID, name)
}

// ParseExternalID extracts the external topic id embedded in a tier-3 node
// name of the form "Topic_{id}: ...". The second return is false when the
// name does not carry the prefix.
func ParseExternalID(name string) (int, bool) {
	if !strings.HasPrefix(name, "Topic_") {
		return 0, false
	}
	rest := strings.TrimPrefix(name, "Topic_")
	idx := strings.Index(rest, ":")
	if idx < 0 {
		return 0, false
	}
	id, err := strconv.Atoi(rest[:idx])
	if err != nil {
		return 0, false
	}
	return id, true
}

// Package taxonomy defines the YAML seed-file format for the three-tier
// topic taxonomy and its structural validation.
package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lexmesh/wordloom/pkg/types"
)

// Tree is a full taxonomy seed: tier-1 domains containing tier-2 categories
// containing tier-3 topics. The YAML layout makes the parent-child tier
// relationship structural, so a seeded taxonomy cannot have a tier-3 node
// hanging off a tier-1 parent.
type Tree struct {
	Domains []Domain `yaml:"tier1"`
}

// Domain is a tier-1 node.
type Domain struct {
	Name       string     `yaml:"name"`
	Categories []Category `yaml:"tier2"`
}

// Category is a tier-2 node.
type Category struct {
	Name   string  `yaml:"name"`
	Topics []Topic `yaml:"tier3"`
}

// Topic is a tier-3 node bound to an external topic-model cluster id. The
// stored node name is composed as "Topic_{external_id}: {name}" so the
// assignment job can map model output back to the taxonomy.
type Topic struct {
	ExternalID int    `yaml:"external_id"`
	Name       string `yaml:"name"`
}

// Load reads and validates a taxonomy seed file.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}
	var tree Tree
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse taxonomy file: %w", err)
	}
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return &tree, nil
}

// Validate checks that every node has a name, every external id appears at
// most once, and the tree is non-empty.
func (t *Tree) Validate() error {
	if len(t.Domains) == 0 {
		return fmt.Errorf("taxonomy: %w: no tier-1 domains", types.ErrInvalidName)
	}
	seenIDs := make(map[int]bool)
	for _, d := range t.Domains {
		if d.Name == "" {
			return fmt.Errorf("taxonomy: %w: empty tier-1 name", types.ErrInvalidName)
		}
		for _, c := range d.Categories {
			if c.Name == "" {
				return fmt.Errorf("taxonomy: %w: empty tier-2 name under %q", types.ErrInvalidName, d.Name)
			}
			for _, tp := range c.Topics {
				if tp.Name == "" {
					return fmt.Errorf("taxonomy: %w: empty tier-3 name under %q", types.ErrInvalidName, c.Name)
				}
				if seenIDs[tp.ExternalID] {
					return fmt.Errorf("taxonomy: duplicate external id %d", tp.ExternalID)
				}
				seenIDs[tp.ExternalID] = true
			}
		}
	}
	return nil
}

// TopicCount returns the number of tier-3 topics in the tree.
func (t *Tree) TopicCount() int {
	n := 0
	for _, d := range t.Domains {
		for _, c := range d.Categories {
			n += len(c.Topics)
		}
	}
	return n
}

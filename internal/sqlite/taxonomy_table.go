// This file implements taxonomy seeding and lookup: the three-tier category
// tree and the mapping from external topic-model cluster ids to stable
// taxonomy rows.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lexmesh/wordloom/internal/taxonomy"
	"github.com/lexmesh/wordloom/pkg/types"
)

// SeedResult reports what a taxonomy seed run created.
type SeedResult struct {
	Tier1   int
	Tier2   int
	Tier3   int
	Skipped bool // true when the taxonomy was already populated
}

// SeedTaxonomy populates topic_taxonomy from a validated tree. Seeding only
// runs against an empty taxonomy; re-seeding an already populated store is
// a no-op with Skipped set, matching the create-once lifecycle of taxonomy
// rows. The whole seed is one transaction.
func (s *Store) SeedTaxonomy(tree *taxonomy.Tree) (SeedResult, error) {
	var result SeedResult

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM topic_taxonomy").Scan(&count); err != nil {
		return result, fmt.Errorf("counting taxonomy nodes: %w", err)
	}
	if count > 0 {
		result.Skipped = true
		return result, nil
	}

	now := timestamp(time.Now())

	tx, err := s.db.Begin()
	if err != nil {
		return result, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	insert := func(name string, tier int, parentID any) (int64, error) {
		res, err := tx.Exec(
			"INSERT INTO topic_taxonomy (topic_name, tier, parent_id, created_at) VALUES (?, ?, ?, ?)",
			name, tier, parentID, now,
		)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	for _, d := range tree.Domains {
		t1, err := insert(d.Name, types.TierDomain, nil)
		if err != nil {
			return result, fmt.Errorf("seeding domain %q: %w", d.Name, err)
		}
		result.Tier1++

		for _, c := range d.Categories {
			t2, err := insert(c.Name, types.TierCategory, t1)
			if err != nil {
				return result, fmt.Errorf("seeding category %q: %w", c.Name, err)
			}
			result.Tier2++

			for _, tp := range c.Topics {
				name := types.TopicName(tp.ExternalID, tp.Name)
				if _, err := insert(name, types.TierTopic, t2); err != nil {
					return result, fmt.Errorf("seeding topic %q: %w", name, err)
				}
				result.Tier3++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("committing seed transaction: %w", err)
	}
	return result, nil
}

// TopicByExternalID maps an external topic-model cluster id to the tier-3
// taxonomy node whose name starts with "Topic_{id}:". Returns ErrUnmapped
// when no such node exists; callers skip unmapped items rather than fail.
func (s *Store) TopicByExternalID(externalID int) (*types.TaxonomyNode, error) {
	row := s.db.QueryRow(
		`SELECT id, topic_name, tier, parent_id, created_at
         FROM topic_taxonomy
         WHERE tier = ? AND topic_name LIKE ?`,
		types.TierTopic, fmt.Sprintf("Topic_%d:%%", externalID),
	)
	node, err := hydrateNode(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrUnmapped
		}
		return nil, fmt.Errorf("looking up external topic %d: %w", externalID, err)
	}
	return node, nil
}

// NodeByID retrieves a taxonomy node by row id.
func (s *Store) NodeByID(id int64) (*types.TaxonomyNode, error) {
	row := s.db.QueryRow(
		"SELECT id, topic_name, tier, parent_id, created_at FROM topic_taxonomy WHERE id = ?",
		id,
	)
	node, err := hydrateNode(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting taxonomy node %d: %w", id, err)
	}
	return node, nil
}

// FetchTaxonomy returns taxonomy nodes, optionally restricted to one tier
// (tier 0 means all), ordered by tier then name.
func (s *Store) FetchTaxonomy(tier int) ([]*types.TaxonomyNode, error) {
	query := "SELECT id, topic_name, tier, parent_id, created_at FROM topic_taxonomy"
	var args []any
	if tier != 0 {
		if tier < types.TierDomain || tier > types.TierTopic {
			return nil, types.ErrInvalidTier
		}
		query += " WHERE tier = ?"
		args = append(args, tier)
	}
	query += " ORDER BY tier ASC, topic_name ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching taxonomy: %w", err)
	}
	defer rows.Close()

	nodes := []*types.TaxonomyNode{}
	for rows.Next() {
		node, err := hydrateNodeFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating taxonomy node: %w", err)
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating taxonomy: %w", err)
	}
	return nodes, nil
}

// Lineage returns the domain, category, and topic names for a tier-3 node.
func (s *Store) Lineage(topicID int64) (domain, category, topic string, err error) {
	row := s.db.QueryRow(
		`SELECT t1.topic_name, t2.topic_name, t3.topic_name
         FROM topic_taxonomy t3
         JOIN topic_taxonomy t2 ON t3.parent_id = t2.id
         JOIN topic_taxonomy t1 ON t2.parent_id = t1.id
         WHERE t3.id = ? AND t3.tier = ?`,
		topicID, types.TierTopic,
	)
	if err := row.Scan(&domain, &category, &topic); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", "", types.ErrNotFound
		}
		return "", "", "", fmt.Errorf("resolving lineage for node %d: %w", topicID, err)
	}
	return domain, category, topic, nil
}

type nodeScanner interface {
	Scan(dest ...any) error
}

func scanNode(sc nodeScanner) (*types.TaxonomyNode, error) {
	var n types.TaxonomyNode
	var parent sql.NullInt64
	var created string
	if err := sc.Scan(&n.ID, &n.Name, &n.Tier, &parent, &created); err != nil {
		return nil, err
	}
	if parent.Valid {
		n.ParentID = &parent.Int64
	}
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		n.CreatedAt = t
	}
	return &n, nil
}

func hydrateNode(row *sql.Row) (*types.TaxonomyNode, error) {
	return scanNode(row)
}

func hydrateNodeFromRows(rows *sql.Rows) (*types.TaxonomyNode, error) {
	return scanNode(rows)
}

// Package sqlite implements the SQLite label store for wordloom: the topic
// taxonomy, the comment and word label tables, the word token index, and
// the dimension score table.
package sqlite

// Schema DDL. The database file persists between runs, so every statement
// is IF NOT EXISTS. The comment_labels CHECK enforces topic/value
// exclusivity; word_labels carries the (word, label_type, label_value)
// uniqueness that makes propagation a set union.
const (
	createTaxonomy = `CREATE TABLE IF NOT EXISTS topic_taxonomy (
    id INTEGER PRIMARY KEY,
    topic_name TEXT NOT NULL UNIQUE,
    tier INTEGER NOT NULL CHECK (tier IN (1, 2, 3)),
    parent_id INTEGER REFERENCES topic_taxonomy(id),
    created_at TEXT NOT NULL
);`

	createCommentLabels = `CREATE TABLE IF NOT EXISTS comment_labels (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    comment_id TEXT NOT NULL,
    label_type TEXT NOT NULL,
    label_value TEXT,
    topic_id INTEGER REFERENCES topic_taxonomy(id),
    confidence REAL,
    source TEXT NOT NULL,
    labeled_at TEXT NOT NULL,
    labeled_by TEXT,
    CHECK (
        (label_type = 'topic' AND topic_id IS NOT NULL AND label_value IS NULL) OR
        (label_type != 'topic' AND topic_id IS NULL AND label_value IS NOT NULL)
    )
);`

	createWordLabels = `CREATE TABLE IF NOT EXISTS word_labels (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    word TEXT NOT NULL,
    label_type TEXT NOT NULL,
    label_value TEXT NOT NULL,
    confidence REAL,
    source TEXT NOT NULL,
    labeled_at TEXT NOT NULL,
    labeled_by TEXT,
    notes TEXT,
    UNIQUE (word, label_type, label_value)
);`

	createWordTokens = `CREATE TABLE IF NOT EXISTS word_tokens (
    story_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    word_text TEXT NOT NULL,
    word_lower TEXT NOT NULL,
    PRIMARY KEY (story_id, position)
);`

	createDimensionScores = `CREATE TABLE IF NOT EXISTS dimension_scores (
    content_id TEXT NOT NULL,
    dimension TEXT NOT NULL,
    score REAL NOT NULL,
    scored_at TEXT NOT NULL,
    PRIMARY KEY (content_id, dimension)
);`
)

// Index DDL for the join-heavy queries. The partial unique indexes on
// comment_labels make duplicate label inserts no-ops under INSERT OR IGNORE
// without colliding topic labels with value labels.
const (
	idxTaxonomyParent = `CREATE INDEX IF NOT EXISTS idx_topic_taxonomy_parent
    ON topic_taxonomy(parent_id);`
	idxCommentLabelsComment = `CREATE INDEX IF NOT EXISTS idx_comment_labels_comment_id
    ON comment_labels(comment_id);`
	idxCommentLabelsTypeValue = `CREATE INDEX IF NOT EXISTS idx_comment_labels_type_value
    ON comment_labels(label_type, label_value);`
	idxCommentLabelsTopic = `CREATE INDEX IF NOT EXISTS idx_comment_labels_topic_id
    ON comment_labels(topic_id);`
	idxCommentLabelsTopicUnique = `CREATE UNIQUE INDEX IF NOT EXISTS idx_comment_labels_topic_unique
    ON comment_labels(comment_id, topic_id) WHERE label_type = 'topic';`
	idxCommentLabelsValueUnique = `CREATE UNIQUE INDEX IF NOT EXISTS idx_comment_labels_value_unique
    ON comment_labels(comment_id, label_type, label_value) WHERE label_type != 'topic';`
	idxWordLabelsWord = `CREATE INDEX IF NOT EXISTS idx_word_labels_word
    ON word_labels(word);`
	idxWordLabelsTypeValue = `CREATE INDEX IF NOT EXISTS idx_word_labels_type_value
    ON word_labels(label_type, label_value);`
	idxWordTokensLower = `CREATE INDEX IF NOT EXISTS idx_word_tokens_lower
    ON word_tokens(word_lower);`
	idxDimensionScoresDim = `CREATE INDEX IF NOT EXISTS idx_dimension_scores_dimension
    ON dimension_scores(dimension);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createTaxonomy,
	createCommentLabels,
	createWordLabels,
	createWordTokens,
	createDimensionScores,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxTaxonomyParent,
	idxCommentLabelsComment,
	idxCommentLabelsTypeValue,
	idxCommentLabelsTopic,
	idxCommentLabelsTopicUnique,
	idxCommentLabelsValueUnique,
	idxWordLabelsWord,
	idxWordLabelsTypeValue,
	idxWordTokensLower,
	idxDimensionScoresDim,
}

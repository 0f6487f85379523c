package types

// Standard table names in the label store.
const (
	TaxonomyTable        = "topic_taxonomy"
	CommentLabelsTable   = "comment_labels"
	WordLabelsTable      = "word_labels"
	WordTokensTable      = "word_tokens"
	DimensionScoresTable = "dimension_scores"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	TaxonomyTable,
	CommentLabelsTable,
	WordLabelsTable,
	WordTokensTable,
	DimensionScoresTable,
}

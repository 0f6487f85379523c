package types

// WordToken is one positioned word of a story or comment. Tokens are the
// join surface between content-level labels and word-level labels.
type WordToken struct {
	StoryID  string // External content identifier.
	Position int    // Zero-based position within the content.
	Text     string // Word as it appeared.
	Lower    string // Lowercased form used for label joins.
}

// Document is content text reconstructed from its tokens, used as model
// input for topic assignment.
type Document struct {
	StoryID    string
	Text       string // Tokens joined by single spaces, in position order.
	TokenCount int
}

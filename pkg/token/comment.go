package token

import "strings"

// CommentKind distinguishes the comment forms found in a dump.
type CommentKind int

// Comment kinds.
const (
	LineComment        CommentKind = iota // -- comment or # comment
	BlockComment                          // /* comment */
	ConditionalComment                    // /*!40101 SET ... */ (MySQL versioned)
)

// String returns a short name for the kind.
func (k CommentKind) String() string {
	switch k {
	case LineComment:
		return "line"
	case BlockComment:
		return "block"
	case ConditionalComment:
		return "conditional"
	default:
		return "unknown"
	}
}

// Comment represents a comment skipped by the scanner, with its position.
type Comment struct {
	Kind CommentKind
	Text string // includes delimiters (-- or /* */)
	Span Span
}

// KindOf classifies raw comment text by its opening delimiter.
func KindOf(text string) CommentKind {
	switch {
	case strings.HasPrefix(text, "/*!"):
		return ConditionalComment
	case strings.HasPrefix(text, "/*"):
		return BlockComment
	default:
		return LineComment
	}
}

// IsLineComment returns true if this is a line comment.
func (c *Comment) IsLineComment() bool {
	return c.Kind == LineComment
}

// IsBlockComment returns true if this is a block or conditional comment.
func (c *Comment) IsBlockComment() bool {
	return c.Kind == BlockComment || c.Kind == ConditionalComment
}

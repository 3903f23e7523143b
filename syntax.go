package mvreport

// Token represents a syntax-highlighted segment of a JSON document.
type Token struct {
	Text  string // The text content of this token
	Style Style  // Visual style to apply
}

// Style represents the visual styling for a token.
type Style struct {
	Foreground Color // Empty for default
	Bold       bool
}

// Highlighter splits a serialized JSON document into styled tokens.
type Highlighter interface {
	// HighlightLines returns the tokens of source grouped by line.
	// Returns nil if source cannot be tokenized.
	HighlightLines(source string) [][]Token
}

// Package chroma provides JSON syntax highlighting using the chroma library.
package chroma

import (
	"errors"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/mvreport"
)

// Compile-time interface verification.
var _ mvreport.Highlighter = (*Highlighter)(nil)

// StyleFunc maps chroma token types to mvreport styles.
type StyleFunc func(chromalib.TokenType) mvreport.Style

// Highlighter tokenizes JSON documents using chroma.
type Highlighter struct {
	lexer     chromalib.Lexer
	styleFunc StyleFunc
}

// NewHighlighter creates a JSON highlighter with the given style function.
// Use StyleFromPalette to create a style function from a mvreport.Palette.
func NewHighlighter(styleFunc StyleFunc) (*Highlighter, error) {
	if styleFunc == nil {
		return nil, errors.New("chroma: styleFunc cannot be nil")
	}
	lexer := lexers.Get("json")
	if lexer == nil {
		return nil, errors.New("chroma: json lexer not registered")
	}
	// Coalesce for better performance with consecutive tokens of the same type
	return &Highlighter{lexer: chromalib.Coalesce(lexer), styleFunc: styleFunc}, nil
}

// Highlight splits source into styled tokens.
// Returns nil if an error occurs and an empty slice for empty source.
func (h *Highlighter) Highlight(source string) []mvreport.Token {
	if source == "" {
		return []mvreport.Token{}
	}

	iterator, err := h.lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	var tokens []mvreport.Token
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		tokens = append(tokens, mvreport.Token{
			Text:  token.Value,
			Style: h.styleFunc(token.Type),
		})
	}
	return tokens
}

// HighlightLines tokenizes the whole document, then splits tokens by line so
// multi-line strings keep their style.
func (h *Highlighter) HighlightLines(source string) [][]mvreport.Token {
	tokens := h.Highlight(source)
	if tokens == nil {
		return nil
	}
	return splitTokensByLine(tokens)
}

// splitTokensByLine splits a flat list of tokens into per-line token slices.
// Lines without tokens are kept as empty slices.
func splitTokensByLine(tokens []mvreport.Token) [][]mvreport.Token {
	if len(tokens) == 0 {
		return [][]mvreport.Token{}
	}

	var (
		lines [][]mvreport.Token
		line  []mvreport.Token
	)
	for _, tok := range tokens {
		parts := strings.Split(tok.Text, "\n")
		for i, part := range parts {
			if part != "" {
				line = append(line, mvreport.Token{Text: part, Style: tok.Style})
			}
			if i < len(parts)-1 {
				lines = append(lines, line)
				line = nil
			}
		}
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/mvreport"
)

// StyleFromPalette returns a function that maps JSON token types to
// mvreport styles based on the provided palette colors.
func StyleFromPalette(p mvreport.Palette) StyleFunc {
	return func(tt chromalib.TokenType) mvreport.Style {
		switch {
		// Object keys
		case tt == chromalib.NameTag:
			return mvreport.Style{Foreground: p.Key, Bold: true}

		// true, false, null
		case tt.InCategory(chromalib.Keyword):
			return mvreport.Style{Foreground: p.Constant}

		case tt.InSubCategory(chromalib.LiteralString):
			return mvreport.Style{Foreground: p.String}

		case tt.InSubCategory(chromalib.LiteralNumber):
			return mvreport.Style{Foreground: p.Number}

		case tt == chromalib.Punctuation:
			return mvreport.Style{Foreground: p.Punctuation}

		default:
			return mvreport.Style{}
		}
	}
}

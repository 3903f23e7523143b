package chroma_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/mvreport"
	"github.com/fwojciec/mvreport/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHighlighter(t *testing.T) *chroma.Highlighter {
	t.Helper()
	h, err := chroma.NewHighlighter(chroma.StyleFromPalette(testPalette()))
	require.NoError(t, err)
	return h
}

func joinTokens(tokens []mvreport.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

func TestNewHighlighter_RequiresStyleFunc(t *testing.T) {
	t.Parallel()

	_, err := chroma.NewHighlighter(nil)
	assert.Error(t, err)
}

func TestHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	t.Run("reconstructs the source", func(t *testing.T) {
		t.Parallel()

		src := `{"acordes": ["C", "G"], "presente": true, "pontuacao": 4}`
		tokens := newHighlighter(t).Highlight(src)

		require.NotEmpty(t, tokens)
		assert.Equal(t, src, strings.TrimSuffix(joinTokens(tokens), "\n"))
	})

	t.Run("styles keys and values differently", func(t *testing.T) {
		t.Parallel()

		tokens := newHighlighter(t).Highlight(`{"nota": "alta"}`)

		styles := map[string]mvreport.Style{}
		for _, tok := range tokens {
			styles[tok.Text] = tok.Style
		}
		assert.Equal(t, mvreport.Color("#0000ff"), styles[`"nota"`].Foreground)
		assert.Equal(t, mvreport.Color("#00ff00"), styles[`"alta"`].Foreground)
	})

	t.Run("handles empty source", func(t *testing.T) {
		t.Parallel()

		tokens := newHighlighter(t).Highlight("")

		assert.NotNil(t, tokens)
		assert.Empty(t, tokens)
	})
}

func TestHighlighter_HighlightLines(t *testing.T) {
	t.Parallel()

	t.Run("splits an indented document by line", func(t *testing.T) {
		t.Parallel()

		src := "{\n  \"acordes\": [\n    \"C\"\n  ]\n}"
		lines := newHighlighter(t).HighlightLines(src)

		require.Len(t, lines, 5)
		got := make([]string, len(lines))
		for i, line := range lines {
			got[i] = joinTokens(line)
		}
		assert.Equal(t, strings.Split(src, "\n"), got)
	})

	t.Run("empty source has no lines", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, newHighlighter(t).HighlightLines(""))
	})
}

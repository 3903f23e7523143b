package mvreport

// Color is a hex color string in "#RRGGBB" format.
// An empty Color means no override (terminal default).
type Color string

// Palette holds the semantic colors used to render a report.
type Palette struct {
	// Base colors
	Background Color
	Foreground Color

	// JSON syntax colors
	Key         Color
	String      Color
	Number      Color
	Constant    Color // true, false and null
	Punctuation Color

	// Status banner colors
	Loading Color
	Success Color
	Error   Color

	// Score colors, by rating
	ScoreHigh Color // 4 and above
	ScoreMid  Color // 3 and above
	ScoreLow  Color

	// UI colors
	UIBackground Color // panel headers, tags, selected tab
	UIForeground Color
	UIAccent     Color // focus, links, section titles
	Muted        Color // labels, help, borders
}

// Theme provides the palette for rendering reports.
// Different implementations can provide light/dark variants.
type Theme interface {
	Palette() Palette
}

// ScoreColor picks the palette color for a rendered score.
// Scores without a numeric value use the muted color.
func (p Palette) ScoreColor(s *Score) Color {
	v, ok := s.Value()
	switch {
	case !ok:
		return p.Muted
	case v >= 4:
		return p.ScoreHigh
	case v >= 3:
		return p.ScoreMid
	default:
		return p.ScoreLow
	}
}

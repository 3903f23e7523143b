package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mvreport"
)

// styles holds the lipgloss styles derived from a palette.
type styles struct {
	palette  mvreport.Palette
	renderer *lipgloss.Renderer

	title        lipgloss.Style
	sectionTitle lipgloss.Style
	label        lipgloss.Style
	value        lipgloss.Style
	muted        lipgloss.Style
	link         lipgloss.Style
	tag          lipgloss.Style

	input        lipgloss.Style
	inputFocused lipgloss.Style
	option       lipgloss.Style
	optionCursor lipgloss.Style

	loading lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style

	tab         lipgloss.Style
	tabActive   lipgloss.Style
	panel       lipgloss.Style
	panelActive lipgloss.Style
	button      lipgloss.Style
	copied      lipgloss.Style
	notice      lipgloss.Style
}

// newStyles builds styles from p. If renderer is nil, the default lipgloss
// renderer is used.
func newStyles(p mvreport.Palette, renderer *lipgloss.Renderer) styles {
	newStyle := func() lipgloss.Style {
		if renderer != nil {
			return renderer.NewStyle()
		}
		return lipgloss.NewStyle()
	}
	fg := func(c mvreport.Color) lipgloss.Style {
		s := newStyle()
		if c != "" {
			s = s.Foreground(lipgloss.Color(c))
		}
		return s
	}
	border := lipgloss.RoundedBorder()

	return styles{
		palette:  p,
		renderer: renderer,

		title:        fg(p.UIAccent).Bold(true),
		sectionTitle: fg(p.UIAccent).Bold(true).Underline(true),
		label:        fg(p.Muted),
		value:        fg(p.Foreground),
		muted:        fg(p.Muted),
		link:         fg(p.UIAccent).Underline(true),
		tag:          fg(p.UIForeground).Background(lipgloss.Color(p.UIBackground)).Padding(0, 1),

		input:        newStyle().Border(border).BorderForeground(lipgloss.Color(p.Muted)).Padding(0, 1),
		inputFocused: newStyle().Border(border).BorderForeground(lipgloss.Color(p.UIAccent)).Padding(0, 1),
		option:       fg(p.UIForeground),
		optionCursor: fg(p.UIAccent).Bold(true),

		loading: fg(p.Loading),
		success: fg(p.Success).Bold(true),
		failure: fg(p.Error).Bold(true),

		tab:         fg(p.Muted).Padding(0, 1),
		tabActive:   fg(p.Foreground).Background(lipgloss.Color(p.UIBackground)).Bold(true).Padding(0, 1),
		panel:       fg(p.UIForeground),
		panelActive: fg(p.UIAccent).Bold(true),
		button:      fg(p.UIForeground).Background(lipgloss.Color(p.UIBackground)).Padding(0, 1),
		copied:      fg(p.Background).Background(lipgloss.Color(p.Success)).Bold(true).Padding(0, 1),
		notice:      fg(p.Foreground).Border(border).BorderForeground(lipgloss.Color(p.Error)).Padding(1, 2),
	}
}

// score returns the style for a rendered score.
func (s styles) score(sc *mvreport.Score) lipgloss.Style {
	style := s.value.Bold(true)
	if c := s.palette.ScoreColor(sc); c != "" {
		style = style.Foreground(lipgloss.Color(c))
	}
	return style
}

// token returns the style for a highlighted token.
func (s styles) token(st mvreport.Style) lipgloss.Style {
	var style lipgloss.Style
	if s.renderer != nil {
		style = s.renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if st.Foreground != "" {
		style = style.Foreground(lipgloss.Color(st.Foreground))
	}
	if st.Bold {
		style = style.Bold(true)
	}
	return style
}

package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mvreport"
	"github.com/muesli/termenv"
)

// minValueWidth keeps values readable on narrow terminals.
const minValueWidth = 20

// renderTable renders the table projection, wrapping values to width.
func renderTable(sections []mvreport.TableSection, st styles, width int) string {
	var blocks []string
	for _, s := range sections {
		blocks = append(blocks, renderSection(s, st, width))
	}
	return strings.Join(blocks, "\n\n")
}

func renderSection(s mvreport.TableSection, st styles, width int) string {
	lines := []string{st.sectionTitle.Render(s.Title)}

	labelWidth := 0
	for _, r := range s.Rows {
		if w := lipgloss.Width(rowLabel(r)); w > labelWidth {
			labelWidth = w
		}
	}
	valueWidth := max(width-labelWidth-4, minValueWidth)

	for _, r := range s.Rows {
		if r.Label == "" {
			lines = append(lines, "  "+renderCell(r.Cell, st, width-2))
			continue
		}
		label := st.label.Width(labelWidth).Render(rowLabel(r))
		value := renderCell(r.Cell, st, valueWidth)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, "  ", label, "  ", value))
	}
	return strings.Join(lines, "\n")
}

func rowLabel(r mvreport.Row) string {
	if r.Sub {
		return "  " + r.Label
	}
	return r.Label
}

func renderCell(c mvreport.Cell, st styles, width int) string {
	switch {
	case c.Kind == mvreport.CellTags:
		return renderTags(c.Tags, st, width)
	case c.Kind == mvreport.CellLink:
		return hyperlink(c.Text, st.link.Render(c.Text))
	case c.Score != nil || c.Text == mvreport.Placeholder+mvreport.ScoreSuffix:
		return st.score(c.Score).Render(c.Text)
	case c.Text == mvreport.Placeholder:
		return st.muted.Render(c.Text)
	default:
		return st.value.Width(width).Render(c.Text)
	}
}

// renderTags lays tags out left to right, wrapping at width.
func renderTags(tags []string, st styles, width int) string {
	var (
		lines []string
		line  []string
		used  int
	)
	for _, t := range tags {
		tag := st.tag.Render(t)
		w := lipgloss.Width(tag)
		if len(line) > 0 && used+1+w > width {
			lines = append(lines, strings.Join(line, " "))
			line, used = nil, 0
		}
		if len(line) > 0 {
			used++
		}
		line = append(line, tag)
		used += w
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}

// hyperlink wraps text in an OSC 8 hyperlink to url.
func hyperlink(url, text string) string {
	return termenv.Hyperlink(url, text)
}

// panelMarkers show a panel's state in its header.
const (
	markerCollapsed = "▸"
	markerExpanded  = "▾"
)

// jsonView is the rendered JSON tab and the line each panel header starts on.
type jsonView struct {
	content    string
	panelLines []int
}

// renderJSON renders the panels followed by the full document and the copy
// button. focused is the index of the focused panel, or -1.
func renderJSON(panels *mvreport.Panels, doc mvreport.Document, button string, copied bool, focused int, st styles, hl mvreport.Highlighter) jsonView {
	var (
		lines []string
		view  jsonView
	)
	for i, title := range panels.Titles() {
		panel, _ := panels.Get(title)
		view.panelLines = append(view.panelLines, len(lines))

		marker := markerCollapsed
		if panel.State == mvreport.Expanded {
			marker = markerExpanded
		}
		style := st.panel
		if i == focused {
			style = st.panelActive
		}
		lines = append(lines, style.Render(marker+" "+title))

		if panel.State == mvreport.Expanded {
			body := highlightLines(panel.Section.Body, st, hl)
			if panel.Reveal < len(body) {
				body = body[:panel.Reveal]
			}
			for _, l := range body {
				lines = append(lines, "    "+l)
			}
		}
	}

	buttonStyle := st.button
	if copied {
		buttonStyle = st.copied
	}
	lines = append(lines, "", st.sectionTitle.Render(mvreport.TitleFullDocument)+"  "+buttonStyle.Render(button))
	for _, l := range highlightLines(doc.Full, st, hl) {
		lines = append(lines, "  "+l)
	}

	view.content = strings.Join(lines, "\n")
	return view
}

// highlightLines renders source line by line with syntax colors.
// Without a highlighter, or if tokenizing fails, lines are plain.
func highlightLines(source string, st styles, hl mvreport.Highlighter) []string {
	if source == "" {
		return nil
	}
	var tokenLines [][]mvreport.Token
	if hl != nil {
		tokenLines = hl.HighlightLines(source)
	}
	if tokenLines == nil {
		return strings.Split(source, "\n")
	}

	out := make([]string, len(tokenLines))
	for i, line := range tokenLines {
		var sb strings.Builder
		for _, tok := range line {
			sb.WriteString(st.token(tok.Style).Render(tok.Text))
		}
		out[i] = sb.String()
	}
	return out
}

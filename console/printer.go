// Package console renders reports for non-interactive terminals.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/fwojciec/mvreport"
	"github.com/mattn/go-runewidth"
)

// Printer writes table projections as colored text.
type Printer struct {
	w io.Writer

	heading *color.Color
	title   *color.Color
	label   *color.Color
	link    *color.Color
	tag     *color.Color
	high    *color.Color
	mid     *color.Color
	low     *color.Color
	muted   *color.Color
}

// Option configures console output.
type Option func(*options)

type options struct {
	noColor bool
}

// WithoutColor disables escape sequences regardless of the terminal.
func WithoutColor() Option {
	return func(o *options) {
		o.noColor = true
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// disable turns off escape sequences for every color when noColor is set.
func disable(noColor bool, colors ...*color.Color) {
	if !noColor {
		return
	}
	for _, c := range colors {
		c.DisableColor()
	}
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, opts ...Option) *Printer {
	p := &Printer{
		w:       w,
		heading: color.New(color.FgMagenta, color.Bold),
		title:   color.New(color.FgCyan, color.Bold),
		label:   color.New(color.Faint),
		link:    color.New(color.FgBlue, color.Underline),
		tag:     color.New(color.FgHiWhite, color.BgHiBlack),
		high:    color.New(color.FgGreen, color.Bold),
		mid:     color.New(color.FgYellow, color.Bold),
		low:     color.New(color.FgRed, color.Bold),
		muted:   color.New(color.FgHiBlack),
	}
	disable(applyOptions(opts).noColor, p.heading, p.title, p.label, p.link, p.tag, p.high, p.mid, p.low, p.muted)
	return p
}

// Heading writes a line naming the analyzed URL.
func (p *Printer) Heading(url string) {
	p.heading.Fprintf(p.w, "▶ %s\n", url)
}

// PrintTable writes every section of the table projection.
func (p *Printer) PrintTable(sections []mvreport.TableSection) {
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(p.w)
		}
		p.printSection(s)
	}
}

// Footer writes the format hint shown after table output.
func (p *Printer) Footer() {
	fmt.Fprintln(p.w, p.muted.Sprint(strings.Repeat("─", 60)))
	fmt.Fprintln(p.w, p.muted.Sprint("Use -o json or -o yaml for machine-readable output"))
}

func (p *Printer) printSection(s mvreport.TableSection) {
	p.title.Fprintln(p.w, s.Title)

	width := 0
	for _, r := range s.Rows {
		if w := runewidth.StringWidth(r.Label) + subIndent(r); w > width {
			width = w
		}
	}

	for _, r := range s.Rows {
		value := p.cell(r.Cell)
		if r.Label == "" {
			fmt.Fprintf(p.w, "  %s\n", value)
			continue
		}
		label := strings.Repeat(" ", subIndent(r)) + r.Label
		fmt.Fprintf(p.w, "  %s  %s\n", p.label.Sprint(runewidth.FillRight(label, width)), value)
	}
}

func subIndent(r mvreport.Row) int {
	if r.Sub {
		return 2
	}
	return 0
}

func (p *Printer) cell(c mvreport.Cell) string {
	switch {
	case c.Kind == mvreport.CellTags:
		tags := make([]string, len(c.Tags))
		for i, t := range c.Tags {
			tags[i] = p.tag.Sprintf("[%s]", t)
		}
		return strings.Join(tags, " ")
	case c.Kind == mvreport.CellLink:
		return p.link.Sprint(c.Text)
	case c.Score != nil || c.Text == mvreport.Placeholder+mvreport.ScoreSuffix:
		return p.scoreColor(c.Score).Sprint(c.Text)
	default:
		return c.Text
	}
}

// scoreColor follows the rating bands: 4 and above, 3 and above, below 3.
func (p *Printer) scoreColor(s *mvreport.Score) *color.Color {
	v, ok := s.Value()
	switch {
	case !ok:
		return p.muted
	case v >= 4:
		return p.high
	case v >= 3:
		return p.mid
	default:
		return p.low
	}
}

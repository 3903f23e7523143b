package bubbletea

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/mvreport"
)

// Compile-time interface verification.
var _ mvreport.Viewer = (*Viewer)(nil)

// Viewer implements mvreport.Viewer using a Bubble Tea TUI.
type Viewer struct {
	opts []ModelOption
}

// NewViewer creates a new Viewer. The options are applied to every model it runs.
func NewViewer(opts ...ModelOption) *Viewer {
	return &Viewer{opts: opts}
}

// View displays the report read-only and blocks until the user exits.
func (v *Viewer) View(ctx context.Context, report *mvreport.Report) error {
	opts := append([]ModelOption{WithReport(report), WithContext(ctx)}, v.opts...)
	return run(ctx, NewModel(nil, opts...))
}

// Run starts the interactive analyzer and blocks until the user exits.
func Run(ctx context.Context, analyzer mvreport.Analyzer, opts ...ModelOption) error {
	opts = append([]ModelOption{WithContext(ctx)}, opts...)
	return run(ctx, NewModel(analyzer, opts...))
}

func run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

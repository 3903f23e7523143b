package console

import (
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/fwojciec/mvreport"
)

// Compile-time interface verification.
var _ mvreport.StatusSignal = (*Status)(nil)

// Status implements mvreport.StatusSignal with a terminal spinner.
// Several coordinators may share one Status; the spinner runs while any of
// them is loading.
type Status struct {
	mu      sync.Mutex
	w       io.Writer
	spinner *spinner.Spinner
	loading int
	visible bool

	success *color.Color
	failure *color.Color
}

// NewStatus creates a Status writing to w, usually stderr.
func NewStatus(w io.Writer, opts ...Option) *Status {
	s := &Status{
		w:       w,
		spinner: spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w)),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
	disable(applyOptions(opts).noColor, s.success, s.failure)
	return s
}

// ShowLoading starts the spinner with message.
func (s *Status) ShowLoading(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading++
	if s.spinner.Active() {
		return
	}
	s.spinner.Suffix = " " + message
	s.spinner.Start()
}

// ShowSuccess finishes one load and prints message.
func (s *Status) ShowSuccess(message string) {
	s.finish(s.success, "✓ "+message)
}

// ShowError finishes one load, if any, and prints message.
func (s *Status) ShowError(message string) {
	s.finish(s.failure, "✗ "+message)
}

// HideResults marks results as hidden.
func (s *Status) HideResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = false
}

// ShowResults marks results as visible.
func (s *Status) ShowResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = true
}

// Visible reports whether the last signal showed results.
func (s *Status) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Loading returns the number of loads in flight.
func (s *Status) Loading() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Status) finish(c *color.Color, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading > 0 {
		s.loading--
	}
	// The spinner owns the current line; stop it before printing.
	s.spinner.Stop()
	c.Fprintln(s.w, line)
	if s.loading > 0 {
		s.spinner.Start()
	}
}

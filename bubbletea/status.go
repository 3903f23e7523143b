package bubbletea

import "github.com/fwojciec/mvreport"

// Compile-time interface verification.
var _ mvreport.StatusSignal = (*Banner)(nil)

// StatusKind is the state of the status banner.
type StatusKind int

// Status kinds.
const (
	StatusIdle StatusKind = iota
	StatusLoading
	StatusSuccess
	StatusError
)

// Banner is the status banner and results visibility gate of the TUI.
// It is only touched from the Bubble Tea update loop.
type Banner struct {
	kind    StatusKind
	message string
	visible bool
}

// NewBanner returns an idle banner with results hidden.
func NewBanner() *Banner {
	return &Banner{}
}

func (b *Banner) ShowLoading(message string) { b.set(StatusLoading, message) }
func (b *Banner) ShowSuccess(message string) { b.set(StatusSuccess, message) }
func (b *Banner) ShowError(message string)   { b.set(StatusError, message) }
func (b *Banner) HideResults()               { b.visible = false }
func (b *Banner) ShowResults()               { b.visible = true }

// Kind returns the current banner state.
func (b *Banner) Kind() StatusKind { return b.kind }

// Message returns the current banner text.
func (b *Banner) Message() string { return b.message }

// ResultsVisible reports whether the results area is shown.
func (b *Banner) ResultsVisible() bool { return b.visible }

func (b *Banner) set(kind StatusKind, message string) {
	b.kind = kind
	b.message = message
}

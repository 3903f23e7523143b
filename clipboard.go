package mvreport

import "time"

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}

// Copy button labels.
const (
	CopyLabel   = "Copiar JSON"
	CopiedLabel = "Copiado!"
)

// CopyFailedNotice is shown, and must be acknowledged, when a copy fails.
const CopyFailedNotice = "Não foi possível copiar o texto. Por favor, tente selecionar e copiar manualmente."

// CopyFeedbackDelay is how long the copied label stays before reverting.
const CopyFeedbackDelay = 2 * time.Second

// Export writes the full document snapshot to the clipboard.
// An empty snapshot is a no-op and returns ErrNoDocument.
func Export(cb Clipboard, doc string) error {
	if doc == "" {
		return ErrNoDocument
	}
	if err := cb.Copy(doc); err != nil {
		return &ClipboardError{Err: err}
	}
	return nil
}

// CopyButton holds the transient label of the copy button.
// Every confirmation gets a generation; a revert only applies to the latest
// one, so overlapping feedback timers always settle on the original label.
type CopyButton struct {
	label      string
	original   string
	generation int
}

// NewCopyButton returns a button showing label.
func NewCopyButton(label string) *CopyButton {
	return &CopyButton{label: label, original: label}
}

// Label returns the text currently shown on the button.
func (b *CopyButton) Label() string {
	return b.label
}

// Copied reports whether the confirmation label is showing.
func (b *CopyButton) Copied() bool {
	return b.label != b.original
}

// Confirm shows the copied label and returns the generation to pass to Revert.
func (b *CopyButton) Confirm() int {
	b.generation++
	b.label = CopiedLabel
	return b.generation
}

// Revert restores the original label unless a newer confirmation superseded generation.
func (b *CopyButton) Revert(generation int) {
	if generation != b.generation {
		return
	}
	b.label = b.original
}

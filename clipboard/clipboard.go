// Package clipboard provides system clipboard access.
package clipboard

import (
	"io"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/mvreport"
	"github.com/muesli/termenv"
)

// Compile-time interface verification.
var (
	_ mvreport.Clipboard = (*System)(nil)
	_ mvreport.Clipboard = (*OSC52)(nil)
)

// System implements Clipboard using the platform clipboard utilities
// (pbcopy, xclip/xsel, wl-copy or the Windows API).
type System struct{}

// NewSystem returns a new System clipboard.
func NewSystem() *System {
	return &System{}
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	return clipboard.WriteAll(content)
}

// Available reports whether a platform clipboard utility was found.
func Available() bool {
	return !clipboard.Unsupported
}

// OSC52 implements Clipboard by asking the terminal to set the clipboard
// with an OSC 52 escape sequence. It works over SSH where no local
// clipboard utility exists.
type OSC52 struct {
	out *termenv.Output
}

// NewOSC52 returns a clipboard that writes escape sequences to w.
func NewOSC52(w io.Writer) *OSC52 {
	return &OSC52{out: termenv.NewOutput(w)}
}

// Copy sends content to the terminal clipboard.
func (o *OSC52) Copy(content string) error {
	o.out.Copy(content)
	return nil
}

// Default returns the system clipboard when available and falls back to
// OSC 52 on w otherwise.
func Default(w io.Writer) mvreport.Clipboard {
	if Available() {
		return NewSystem()
	}
	return NewOSC52(w)
}

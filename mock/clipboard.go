package mock

import "github.com/fwojciec/mvreport"

// Compile-time interface verification.
var _ mvreport.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of mvreport.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}

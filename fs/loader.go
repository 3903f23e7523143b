package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/mvreport"
)

// Compile-time interface verification.
var _ mvreport.ResultLoader = (*Loader)(nil)

// StdinPath selects standard input instead of a file.
const StdinPath = "-"

// maxDocumentSize bounds a saved result document (16MB).
const maxDocumentSize = 16 * 1024 * 1024

// Loader reads saved result documents.
type Loader struct {
	stdin io.Reader
}

// NewLoader creates a Loader reading "-" from stdin.
func NewLoader(stdin io.Reader) *Loader {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Loader{stdin: stdin}
}

// Load reads the result document at path.
func (l *Loader) Load(path string) (*mvreport.Result, error) {
	var r io.Reader
	if path == StdinPath {
		r = l.stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("%s: document larger than %d bytes", path, maxDocumentSize)
	}

	result, err := mvreport.ParseResult(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

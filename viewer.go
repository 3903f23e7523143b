package mvreport

import "context"

// ResultLoader loads a previously saved result document.
type ResultLoader interface {
	Load(path string) (*Result, error)
}

// Viewer presents a rendered report.
type Viewer interface {
	// View displays the report and blocks until the user is done with it.
	View(ctx context.Context, report *Report) error
}

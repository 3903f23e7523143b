package mock

import (
	"context"

	"github.com/fwojciec/mvreport"
)

// Compile-time interface verification.
var _ mvreport.Viewer = (*Viewer)(nil)

// Viewer is a mock implementation of mvreport.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, report *mvreport.Report) error
}

func (v *Viewer) View(ctx context.Context, report *mvreport.Report) error {
	return v.ViewFn(ctx, report)
}

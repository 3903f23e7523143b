// Package mock provides test doubles for mvreport interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/mvreport"
)

// Compile-time interface verification.
var _ mvreport.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of mvreport.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, req mvreport.Request) (*mvreport.Result, error)
}

func (a *Analyzer) Analyze(ctx context.Context, req mvreport.Request) (*mvreport.Result, error) {
	return a.AnalyzeFn(ctx, req)
}

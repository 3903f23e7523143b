package mock

import "github.com/fwojciec/mvreport"

// Compile-time interface verification.
var _ mvreport.ResultLoader = (*ResultLoader)(nil)

// ResultLoader is a mock implementation of mvreport.ResultLoader.
type ResultLoader struct {
	LoadFn func(path string) (*mvreport.Result, error)
}

func (l *ResultLoader) Load(path string) (*mvreport.Result, error) {
	return l.LoadFn(path)
}

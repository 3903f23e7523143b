package mock

import (
	"sync"

	"github.com/fwojciec/mvreport"
)

// Compile-time interface verification.
var _ mvreport.StatusSignal = (*StatusSignal)(nil)

// StatusSignal records every status call in order.
type StatusSignal struct {
	mu    sync.Mutex
	Calls []StatusCall
}

// StatusCall is one recorded status call.
type StatusCall struct {
	Method  string // "loading", "success", "error", "hide" or "show"
	Message string
}

func (s *StatusSignal) ShowLoading(message string) { s.record("loading", message) }
func (s *StatusSignal) ShowSuccess(message string) { s.record("success", message) }
func (s *StatusSignal) ShowError(message string)   { s.record("error", message) }
func (s *StatusSignal) HideResults()               { s.record("hide", "") }
func (s *StatusSignal) ShowResults()               { s.record("show", "") }

// Methods returns the recorded method names in call order.
func (s *StatusSignal) Methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	methods := make([]string, len(s.Calls))
	for i, c := range s.Calls {
		methods[i] = c.Method
	}
	return methods
}

// Last returns the most recent call with the given method.
func (s *StatusSignal) Last(method string) (StatusCall, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.Calls) - 1; i >= 0; i-- {
		if s.Calls[i].Method == method {
			return s.Calls[i], true
		}
	}
	return StatusCall{}, false
}

func (s *StatusSignal) record(method, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, StatusCall{Method: method, Message: message})
}

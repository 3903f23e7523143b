package mvreport

import (
	"errors"
	"fmt"
)

// ErrNoDocument is returned when there is no full document to export yet.
var ErrNoDocument = errors.New("no document to copy")

// InputError reports a URL rejected before any network activity.
type InputError struct {
	URL     string
	Message string // User-facing validation message
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return e.Message
}

// ServiceError reports an analysis call that completed but was refused by the service.
type ServiceError struct {
	Status  int    // HTTP status code, 0 if unknown
	Message string // The service's "erro" message, empty if it sent none
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = UnknownServiceError
	}
	if e.Status != 0 {
		return fmt.Sprintf("analysis service error (HTTP %d): %s", e.Status, msg)
	}
	return "analysis service error: " + msg
}

// TransportError reports an analysis call that could not complete.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return "analysis request failed: " + e.Err.Error()
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ClipboardError reports a failed clipboard write.
type ClipboardError struct {
	Err error
}

// Error implements the error interface.
func (e *ClipboardError) Error() string {
	return "copy to clipboard: " + e.Err.Error()
}

// Unwrap returns the underlying clipboard error.
func (e *ClipboardError) Unwrap() error {
	return e.Err
}

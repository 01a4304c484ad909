package resterr

import (
	"fmt"

	"github.com/loykin/apicall/internal/transport"
)

// RequestError is the default typed error raised when a response status is
// outside an operation's expected set. Operations declaring their own error
// kind register a factory instead; this type backs the common case.
type RequestError struct {
	// Op is the fully-qualified operation name.
	Op string
	// StatusCode is the unexpected response status.
	StatusCode int
	// Body is the raw response body text, best effort ("" when unreadable).
	Body string
	// Payload is the decoded error body, nil when the body was empty.
	Payload any

	message string
}

func (e *RequestError) Error() string { return e.message }

// NewRequestError is a Descriptor.NewError-compatible factory producing a
// *RequestError. The response is consulted for the status code only; the
// body has already been read by the dispatcher.
func NewRequestError(op string) func(msg string, resp transport.Response, body any) error {
	return func(msg string, resp transport.Response, body any) error {
		e := &RequestError{Op: op, Payload: body, message: msg}
		if resp != nil {
			e.StatusCode = resp.StatusCode()
			if s, err := resp.BodyString(); err == nil {
				e.Body = s
			}
		}
		return e
	}
}

// ConstructionError is the secondary error raised when the operation's
// declared error kind cannot be built from the decoded body.
type ConstructionError struct {
	Op         string
	StatusCode int
	// Body is the attempted body text, "" when empty or unreadable.
	Body string
}

func (e *ConstructionError) Error() string {
	msg := fmt.Sprintf("Status code %d, but the declared error for %s cannot be created.", e.StatusCode, e.Op)
	if e.Body != "" {
		msg += fmt.Sprintf(" Response content: %q", e.Body)
	}
	return msg
}

// PollError reports a poll response whose status is neither in-progress nor
// a legitimate terminal status for the operation.
type PollError struct {
	Op         string
	StatusCode int
}

func (e *PollError) Error() string {
	return fmt.Sprintf("polling %s: unexpected status code %d", e.Op, e.StatusCode)
}

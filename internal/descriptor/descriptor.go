package descriptor

import (
	"github.com/loykin/apicall/internal/transport"
)

// Args carries the caller-supplied arguments of one invocation. Resolvers
// read from it; nothing in the core mutates it.
type Args map[string]any

// String returns the argument under key rendered as a string, or "" when
// absent. Non-string values are not converted; resolvers needing formatting
// should close over their own conversion.
func (a Args) String(key string) string {
	if v, ok := a[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// ReturnShape classifies how a call delivers its result. It is fixed when
// the descriptor is built and never inferred from the response.
type ReturnShape int

const (
	// FireAndForget yields a nil result regardless of the response body.
	// Operations with no declared result and all HEAD operations use it.
	FireAndForget ReturnShape = iota
	// BlockingValue blocks the calling goroutine and returns the decoded value.
	BlockingValue
	// DeferredValue delivers exactly one decoded value through a Deferred.
	DeferredValue
	// DeferredCompletion delivers exactly one completion signal, no value.
	DeferredCompletion
)

// BodyShape classifies how a success body is decoded.
type BodyShape int

const (
	// BodyNone discards the body; the result is nil.
	BodyNone BodyShape = iota
	// BodyRawStream hands back the undecoded response byte stream.
	BodyRawStream
	// BodyRawBytes hands back the full response byte buffer.
	BodyRawBytes
	// BodyTyped decodes the body text into the descriptor's result target.
	BodyTyped
)

// QueryParameter binds one query parameter name to its value resolver.
// Resolved values must already be URL-encoded.
type QueryParameter struct {
	Name  string
	Value func(Args) string
}

// HeaderBinding binds one header name to its value resolver.
type HeaderBinding struct {
	Name  string
	Value func(Args) string
}

// Descriptor is the immutable metadata of one declared remote operation.
// Build it once, register it, and share it freely: concurrent invocations
// against the same descriptor are independent.
type Descriptor struct {
	// Name is the fully-qualified operation name used for diagnostics.
	Name   string
	Method string

	Scheme func(Args) string
	Host   func(Args) string
	Path   func(Args) string
	Query  []QueryParameter
	Header []HeaderBinding
	// Body resolves the request body value, or nil when the operation
	// declares none. A resolver returning nil also means no body.
	Body func(Args) any

	// Expected is the set of response status codes treated as success.
	Expected []int

	Returns ReturnShape
	Result  BodyShape
	// NewResult allocates the decode target for BodyTyped results.
	NewResult func() any
	// NewErrorBody allocates the decode target for error payloads.
	NewErrorBody func() any
	// NewError builds the operation's declared error from the composed
	// message, the raw response and the decoded error body. A nil factory
	// or a nil return marks the error kind as unconstructible.
	NewError func(msg string, resp transport.Response, body any) error
}

// IsExpected reports whether status is in the descriptor's expected set.
func (d *Descriptor) IsExpected(status int) bool {
	for _, s := range d.Expected {
		if s == status {
			return true
		}
	}
	return false
}

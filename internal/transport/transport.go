package transport

import (
	"context"
	"io"
)

// Header is a single request header. Headers keep declaration order and are
// matched by exact name.
type Header struct {
	Name  string
	Value string
}

// Request is the fully resolved wire request for one invocation. It is built
// per call and discarded once the response has been interpreted.
type Request struct {
	// Name is the fully-qualified operation name, used for diagnostics only.
	Name     string
	Method   string
	URL      string
	Headers  []Header
	Body     string
	MimeType string
}

// SetHeader appends or replaces a header by exact name.
func (r *Request) SetHeader(name, value string) {
	for i := range r.Headers {
		if r.Headers[i].Name == name {
			r.Headers[i].Value = value
			return
		}
	}
	r.Headers = append(r.Headers, Header{Name: name, Value: value})
}

// HeaderValue returns the value of the header with the exact given name,
// or "" when absent.
func (r *Request) HeaderValue(name string) string {
	for _, h := range r.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

// Response is the read-side contract of a wire response. Body accessors are
// fallible; implementations may buffer the body so repeated reads observe
// the same content.
type Response interface {
	StatusCode() int
	// Header returns the value of the header with the exact given name,
	// or "" when absent.
	Header(name string) string
	BodyStream() (io.ReadCloser, error)
	BodyBytes() ([]byte, error)
	BodyString() (string, error)
}

// Transport sends a request and returns its response. Implementations must
// be safe for concurrent use; each Send is independent.
type Transport interface {
	Send(ctx context.Context, req *Request) (Response, error)
}

// Func adapts a plain function to the Transport interface.
type Func func(ctx context.Context, req *Request) (Response, error)

func (f Func) Send(ctx context.Context, req *Request) (Response, error) {
	return f(ctx, req)
}

// Outcome is the single notification delivered by SendAsync.
type Outcome struct {
	Response Response
	Err      error
}

// SendAsync performs the send on its own goroutine and delivers exactly one
// Outcome on the returned channel.
func SendAsync(ctx context.Context, t Transport, req *Request) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		resp, err := t.Send(ctx, req)
		ch <- Outcome{Response: resp, Err: err}
	}()
	return ch
}

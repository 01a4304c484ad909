package apicall

import (
	"context"
	"time"

	"github.com/loykin/apicall/internal/auth"
	"github.com/loykin/apicall/internal/codec"
	"github.com/loykin/apicall/internal/descriptor"
	"github.com/loykin/apicall/internal/dispatch"
	"github.com/loykin/apicall/internal/httpc"
	"github.com/loykin/apicall/internal/loader"
	"github.com/loykin/apicall/internal/poll"
	"github.com/loykin/apicall/internal/resterr"
	"github.com/loykin/apicall/internal/retry"
	"github.com/loykin/apicall/internal/transport"
)

// Re-export commonly used types for public API

// Args carries the per-invocation arguments consumed by descriptor resolvers.
type Args = descriptor.Args

// Descriptor is the immutable metadata of one declared remote operation.
type Descriptor = descriptor.Descriptor

// Registry maps operation identifiers to descriptors.
type Registry = descriptor.Registry

// QueryParameter and HeaderBinding are the descriptor's ordered bindings.
type QueryParameter = descriptor.QueryParameter
type HeaderBinding = descriptor.HeaderBinding

// Return shapes.
const (
	FireAndForget      = descriptor.FireAndForget
	BlockingValue      = descriptor.BlockingValue
	DeferredValue      = descriptor.DeferredValue
	DeferredCompletion = descriptor.DeferredCompletion
)

// Success body shapes.
const (
	BodyNone      = descriptor.BodyNone
	BodyRawStream = descriptor.BodyRawStream
	BodyRawBytes  = descriptor.BodyRawBytes
	BodyTyped     = descriptor.BodyTyped
)

// Transport is the wire contract consumed by the dispatcher and poll driver.
type Transport = transport.Transport

// TransportFunc adapts a function to the Transport interface.
type TransportFunc = transport.Func

// Request and Response are the wire-level value types.
type Request = transport.Request
type Response = transport.Response

// Codec converts values to and from body text.
type Codec = codec.Codec

// Deferred is the single-notification container returned by deferred shapes.
type Deferred = dispatch.Deferred

// PollStrategy is the pluggable long-running-operation state machine.
type PollStrategy = poll.Strategy

// RequestError is the default typed error for unexpected response statuses.
type RequestError = resterr.RequestError

// ConstructionError is the secondary error raised when a declared error
// kind cannot be built.
type ConstructionError = resterr.ConstructionError

// PollError reports a poll response outside the accepted and terminal sets.
type PollError = resterr.PollError

// Operation is a descriptor loaded from a declarative YAML document.
type Operation = loader.Operation

// NewRegistry returns an empty operation registry.
func NewRegistry() *Registry { return descriptor.NewRegistry() }

// NewRequestError returns a Descriptor.NewError factory producing
// *RequestError values for the named operation.
func NewRequestError(op string) func(msg string, resp Response, body any) error {
	return resterr.NewRequestError(op)
}

// LoadOperation loads an Operation from a YAML operation document.
func LoadOperation(path string) (*Operation, error) { return loader.LoadFile(path) }

// RegisterAuthProvider exposes custom credential provider registration.
func RegisterAuthProvider(typ string, f auth.Factory) { auth.Register(typ, f) }

// RetryConfig configures the retrying transport decorator.
type RetryConfig = retry.Config

// RetryTransport wraps a transport with send retries. Retrying stays outside
// the dispatcher and poll driver.
func RetryTransport(inner Transport, cfg *RetryConfig) Transport { return retry.Transport(inner, cfg) }

// WithRetry wraps the client's transport (as configured so far) with send
// retries. Order matters: apply after WithTransport/WithHTTPClient.
func WithRetry(cfg *RetryConfig) Option {
	return func(c *Client) {
		c.dispatcher.Transport = retry.Transport(c.dispatcher.Transport, cfg)
	}
}

// Client bundles a transport and codec behind the generic execute entry
// points. The zero value is not usable; construct with New.
type Client struct {
	dispatcher dispatch.Dispatcher
	// PollDelay seeds the poll cadence for long-running operations when the
	// server sends no delay hint. Zero means poll.DefaultDelay.
	PollDelay time.Duration
}

// Option mutates a Client under construction.
type Option func(*Client)

// WithTransport replaces the default resty transport.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.dispatcher.Transport = t }
}

// WithCodec replaces the default JSON codec.
func WithCodec(cd Codec) Option {
	return func(c *Client) { c.dispatcher.Codec = cd }
}

// WithHTTPClient uses a resty transport built from the given settings.
func WithHTTPClient(h *httpc.Httpc) Option {
	return func(c *Client) { c.dispatcher.Transport = transport.NewResty(h) }
}

// WithPollDelay sets the initial poll delay for long-running operations.
func WithPollDelay(d time.Duration) Option {
	return func(c *Client) { c.PollDelay = d }
}

// WithAuth decorates the transport so requests carry the credential acquired
// from the registered provider type.
func WithAuth(header, typ string, spec map[string]interface{}) Option {
	return func(c *Client) {
		inner := c.dispatcher.Transport
		c.dispatcher.Transport = auth.WithHeader(inner, header, authMethod{typ: typ, spec: spec})
	}
}

type authMethod struct {
	typ  string
	spec map[string]interface{}
}

func (m authMethod) Acquire(ctx context.Context) (string, error) {
	return auth.Acquire(ctx, m.typ, m.spec)
}

// New builds a Client with the default resty transport and JSON codec.
func New(opts ...Option) *Client {
	c := &Client{
		dispatcher: dispatch.Dispatcher{
			Transport: transport.NewResty(nil),
			Codec:     codec.JSON{},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute maps the descriptor plus args into a wire request, sends it once,
// and interprets the response per the descriptor's declared shapes.
func (c *Client) Execute(ctx context.Context, desc *Descriptor, args Args) (any, error) {
	return c.dispatcher.Execute(ctx, desc, args)
}

// ExecuteAndWait executes the operation and, when the response signals a
// long-running operation, polls it to its terminal state before interpreting
// the final response.
func (c *Client) ExecuteAndWait(ctx context.Context, desc *Descriptor, args Args) (any, error) {
	return c.dispatcher.ExecuteAndWait(ctx, desc, args, c.PollDelay)
}

// HTTPClientConfig is the transport-level client configuration.
type HTTPClientConfig = httpc.Httpc

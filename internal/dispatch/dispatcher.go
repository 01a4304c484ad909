package dispatch

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/loykin/apicall/internal/codec"
	"github.com/loykin/apicall/internal/common"
	"github.com/loykin/apicall/internal/descriptor"
	"github.com/loykin/apicall/internal/resterr"
	"github.com/loykin/apicall/internal/transport"
)

// Dispatcher turns one operation descriptor plus call arguments into a wire
// request and interprets the response according to the descriptor's declared
// shapes. It holds no per-call state; concurrent Execute calls are
// independent.
type Dispatcher struct {
	Transport transport.Transport
	Codec     codec.Codec
}

// BuildRequest resolves the descriptor against args into a request plan:
// absolute URL with query parameters in declared order, declared headers,
// and a serialized JSON body when the operation declares one.
func (d *Dispatcher) BuildRequest(desc *descriptor.Descriptor, args descriptor.Args) (*transport.Request, error) {
	req := &transport.Request{
		Name:   desc.Name,
		Method: desc.Method,
		URL:    buildURL(desc, args),
	}
	for _, h := range desc.Header {
		req.SetHeader(h.Name, h.Value(args))
	}
	if desc.Body != nil {
		if v := desc.Body(args); v != nil {
			body, err := d.Codec.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", desc.Name, err)
			}
			req.Body = body
			req.MimeType = codec.MimeJSON
		}
	}
	return req, nil
}

// Execute performs one invocation of the operation. The result depends on
// the descriptor's declared return shape:
//   - FireAndForget: nil once the status has been validated
//   - BlockingValue: the decoded value
//   - DeferredValue, DeferredCompletion: a *Deferred carrying the single
//     notification; Execute itself returns as soon as the send is underway
//
// Exactly one network send happens per call.
func (d *Dispatcher) Execute(ctx context.Context, desc *descriptor.Descriptor, args descriptor.Args) (any, error) {
	logger := common.GetLogger().WithComponent("dispatch").WithOperation(desc.Name)

	req, err := d.BuildRequest(desc, args)
	if err != nil {
		logger.Error("failed to build request", "error", err)
		return nil, err
	}
	logger.Debug("sending request", "method", req.Method, "url", req.URL)

	switch desc.Returns {
	case descriptor.DeferredValue, descriptor.DeferredCompletion:
		def := newDeferred()
		ch := transport.SendAsync(ctx, d.Transport, req)
		go func() {
			out := <-ch
			if out.Err != nil {
				def.complete(nil, out.Err)
				return
			}
			v, ierr := d.interpret(desc, out.Response)
			if desc.Returns == descriptor.DeferredCompletion {
				v = nil
			}
			def.complete(v, ierr)
		}()
		return def, nil
	default:
		resp, err := d.Transport.Send(ctx, req)
		if err != nil {
			logger.Error("request failed", "error", err)
			return nil, err
		}
		logger.Debug("received response", "status_code", resp.StatusCode())
		return d.interpret(desc, resp)
	}
}

// interpret validates the response status and decodes the success body per
// the declared body shape.
func (d *Dispatcher) interpret(desc *descriptor.Descriptor, resp transport.Response) (any, error) {
	if !desc.IsExpected(resp.StatusCode()) {
		return nil, d.statusError(desc, resp)
	}

	if desc.Returns == descriptor.FireAndForget || strings.EqualFold(desc.Method, http.MethodHead) {
		return nil, nil
	}

	switch desc.Result {
	case descriptor.BodyRawStream:
		return resp.BodyStream()
	case descriptor.BodyRawBytes:
		return resp.BodyBytes()
	case descriptor.BodyTyped:
		text, err := resp.BodyString()
		if err != nil {
			return nil, fmt.Errorf("%s: reading response body: %w", desc.Name, err)
		}
		if desc.NewResult == nil {
			var v any
			if err := d.Codec.Unmarshal(text, &v); err != nil {
				return nil, fmt.Errorf("%s: %w", desc.Name, err)
			}
			return v, nil
		}
		target := desc.NewResult()
		if err := d.Codec.Unmarshal(text, target); err != nil {
			return nil, fmt.Errorf("%s: %w", desc.Name, err)
		}
		return target, nil
	default: // BodyNone
		return nil, nil
	}
}

// statusError builds the typed error for an unexpected response status.
// The body read is best effort: a failure here is treated as an empty body
// and never suppresses the status error. A body that decodes badly does
// take precedence, since it signals a contract mismatch of its own.
func (d *Dispatcher) statusError(desc *descriptor.Descriptor, resp transport.Response) error {
	status := resp.StatusCode()

	var bodyText string
	if s, err := resp.BodyString(); err == nil {
		bodyText = s
	}

	var payload any
	if bodyText != "" && desc.NewErrorBody != nil {
		payload = desc.NewErrorBody()
		if err := d.Codec.Unmarshal(bodyText, payload); err != nil {
			return fmt.Errorf("%s: decoding error body: %w", desc.Name, err)
		}
	}

	msg := fmt.Sprintf("Status code %d, %s", status, bodyText)
	if desc.NewError != nil {
		if e := desc.NewError(msg, resp, payload); e != nil {
			return e
		}
	}
	return &resterr.ConstructionError{Op: desc.Name, StatusCode: status, Body: bodyText}
}

package auth

import (
	"context"

	"github.com/loykin/apicall/internal/common"
	"github.com/loykin/apicall/internal/transport"
)

// WithHeader decorates a transport so every outgoing request carries the
// acquired credential. Requests that already set the header keep their own
// value.
func WithHeader(inner transport.Transport, header string, m Method) transport.Transport {
	if header == "" {
		header = "Authorization"
	}
	return transport.Func(func(ctx context.Context, req *transport.Request) (transport.Response, error) {
		if req.HeaderValue(header) == "" {
			value, err := m.Acquire(ctx)
			if err != nil {
				return nil, err
			}
			req.SetHeader(header, value)
			common.GetLogger().WithComponent("auth").Debug("injected credential",
				"header", header, "value", common.MaskAuthorization(value))
		}
		return inner.Send(ctx, req)
	})
}

package transport

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/loykin/apicall/internal/httpc"
)

// Resty is the default Transport, backed by a shared resty client.
type Resty struct {
	client *resty.Client
}

// NewResty builds a Transport from the given HTTP client settings.
// A nil config uses the default client.
func NewResty(h *httpc.Httpc) *Resty {
	if h == nil {
		h = &httpc.Httpc{}
	}
	return &Resty{client: h.New()}
}

func (t *Resty) Send(ctx context.Context, req *Request) (Response, error) {
	r := t.client.R().SetContext(ctx)
	for _, h := range req.Headers {
		r.SetHeader(h.Name, h.Value)
	}
	if req.Body != "" {
		if req.MimeType != "" {
			r.SetHeader("Content-Type", req.MimeType)
		}
		r.SetBody([]byte(req.Body))
	}

	resp, err := execByMethod(r, req.Method, req.URL)
	if err != nil {
		return nil, err
	}

	headers := make([]Header, 0, len(resp.Header()))
	for name, values := range resp.Header() {
		for _, v := range values {
			headers = append(headers, Header{Name: name, Value: v})
		}
	}
	return NewResponse(resp.StatusCode(), headers, resp.Body()), nil
}

func execByMethod(req *resty.Request, method, url string) (*resty.Response, error) {
	switch method {
	case http.MethodGet:
		return req.Get(url)
	case http.MethodPost:
		return req.Post(url)
	case http.MethodPut:
		return req.Put(url)
	case http.MethodPatch:
		return req.Patch(url)
	case http.MethodDelete:
		return req.Delete(url)
	case http.MethodHead:
		return req.Head(url)
	case http.MethodOptions:
		return req.Options(url)
	default:
		return nil, fmt.Errorf("transport: unsupported method: %s", method)
	}
}

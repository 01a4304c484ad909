package transport

import (
	"bytes"
	"io"
)

// MemoryResponse is a fully buffered in-memory Response. The resty transport
// returns one for every call; tests build them directly.
type MemoryResponse struct {
	status  int
	headers []Header
	body    []byte
	// bodyErr, when set, is returned by every body accessor. It models a
	// response whose body could not be read from the wire.
	bodyErr error
}

// NewResponse builds a buffered response from a status code, headers and body.
func NewResponse(status int, headers []Header, body []byte) *MemoryResponse {
	return &MemoryResponse{status: status, headers: headers, body: body}
}

// NewBrokenResponse builds a response whose body accessors fail with err.
func NewBrokenResponse(status int, headers []Header, err error) *MemoryResponse {
	return &MemoryResponse{status: status, headers: headers, bodyErr: err}
}

func (r *MemoryResponse) StatusCode() int { return r.status }

func (r *MemoryResponse) Header(name string) string {
	for _, h := range r.headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

func (r *MemoryResponse) BodyStream() (io.ReadCloser, error) {
	if r.bodyErr != nil {
		return nil, r.bodyErr
	}
	return io.NopCloser(bytes.NewReader(r.body)), nil
}

func (r *MemoryResponse) BodyBytes() ([]byte, error) {
	if r.bodyErr != nil {
		return nil, r.bodyErr
	}
	return r.body, nil
}

func (r *MemoryResponse) BodyString() (string, error) {
	if r.bodyErr != nil {
		return "", r.bodyErr
	}
	return string(r.body), nil
}

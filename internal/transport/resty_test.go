package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResty_SendCarriesHeadersAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("X-Tenant") != "t1" {
			t.Fatalf("expected tenant header, got %q", r.Header.Get("X-Tenant"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Fatalf("expected json content type, got %q", r.Header.Get("Content-Type"))
		}
		w.Header().Set("Location", "/op/1")
		w.WriteHeader(202)
		_, _ = w.Write([]byte(`{"accepted":true}`))
	}))
	defer srv.Close()

	tp := NewResty(nil)
	req := &Request{
		Name:     "items.create",
		Method:   http.MethodPost,
		URL:      srv.URL + "/items",
		Body:     `{"x":1}`,
		MimeType: "application/json",
	}
	req.SetHeader("X-Tenant", "t1")

	resp, err := tp.Send(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode() != 202 {
		t.Fatalf("expected 202, got %d", resp.StatusCode())
	}
	if resp.Header("Location") != "/op/1" {
		t.Fatalf("expected Location header surfaced, got %q", resp.Header("Location"))
	}
	if s, _ := resp.BodyString(); s != `{"accepted":true}` {
		t.Fatalf("unexpected body: %q", s)
	}
}

func TestResty_UnsupportedMethod(t *testing.T) {
	tp := NewResty(nil)
	if _, err := tp.Send(context.Background(), &Request{Method: "BREW", URL: "http://unused.invalid"}); err == nil {
		t.Fatalf("expected error for unsupported method")
	}
}

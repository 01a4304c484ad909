package transport

import (
	"context"
	"errors"
	"io"
	"testing"
)

func TestRequest_SetHeaderReplacesByExactName(t *testing.T) {
	req := &Request{}
	req.SetHeader("X-Key", "a")
	req.SetHeader("X-Key", "b")
	req.SetHeader("x-key", "c") // different exact name, kept separately

	if got := req.HeaderValue("X-Key"); got != "b" {
		t.Fatalf("expected replaced value b, got %q", got)
	}
	if got := req.HeaderValue("x-key"); got != "c" {
		t.Fatalf("expected exact-name lookup, got %q", got)
	}
	if len(req.Headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(req.Headers))
	}
}

func TestMemoryResponse_BodyAccessors(t *testing.T) {
	resp := NewResponse(200, []Header{{Name: "Location", Value: "/op"}}, []byte("hello"))
	if resp.Header("Location") != "/op" {
		t.Fatalf("expected header lookup")
	}
	if resp.Header("location") != "" {
		t.Fatalf("header lookup must use the exact name")
	}
	s, err := resp.BodyString()
	if err != nil || s != "hello" {
		t.Fatalf("expected body string, got %q err %v", s, err)
	}
	rc, err := resp.BodyStream()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, _ := io.ReadAll(rc)
	if string(b) != "hello" {
		t.Fatalf("expected streamed body, got %q", b)
	}
}

func TestMemoryResponse_Broken(t *testing.T) {
	boom := errors.New("read reset")
	resp := NewBrokenResponse(500, nil, boom)
	if _, err := resp.BodyString(); !errors.Is(err, boom) {
		t.Fatalf("expected body read failure, got %v", err)
	}
	if resp.StatusCode() != 500 {
		t.Fatalf("status must survive a broken body")
	}
}

func TestSendAsync_SingleNotification(t *testing.T) {
	tp := Func(func(ctx context.Context, req *Request) (Response, error) {
		return NewResponse(200, nil, []byte("ok")), nil
	})

	ch := SendAsync(context.Background(), tp, &Request{Method: "GET", URL: "http://x"})
	out := <-ch
	if out.Err != nil || out.Response.StatusCode() != 200 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	select {
	case extra, open := <-ch:
		if open {
			t.Fatalf("expected exactly one notification, got a second: %+v", extra)
		}
	default:
	}
}

func TestSendAsync_ErrorOutcome(t *testing.T) {
	boom := errors.New("dial failed")
	tp := Func(func(ctx context.Context, req *Request) (Response, error) {
		return nil, boom
	})
	out := <-SendAsync(context.Background(), tp, &Request{})
	if !errors.Is(out.Err, boom) {
		t.Fatalf("expected transport error delivered, got %v", out.Err)
	}
}

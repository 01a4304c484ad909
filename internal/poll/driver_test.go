package poll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/loykin/apicall/internal/resterr"
	"github.com/loykin/apicall/internal/transport"
)

// scriptedTransport returns canned responses in order and records requests.
type scriptedTransport struct {
	responses []transport.Response
	requests  []*transport.Request
	inFlight  bool
}

func (s *scriptedTransport) Send(ctx context.Context, req *transport.Request) (transport.Response, error) {
	if s.inFlight {
		return nil, errors.New("overlapping poll detected")
	}
	s.inFlight = true
	defer func() { s.inFlight = false }()

	s.requests = append(s.requests, req)
	if len(s.responses) == 0 {
		return nil, errors.New("script exhausted")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func TestDrive_PollsUntilTerminal(t *testing.T) {
	st := &scriptedTransport{responses: []transport.Response{
		respWith(202, transport.Header{Name: LocationHeader, Value: "https://host/op/2"}),
		respWith(202),
		respWith(200),
	}}

	initial := respWith(202, transport.Header{Name: LocationHeader, Value: "https://host/op/1"})
	s := DetectLocation(testDesc(200), originalReq("https://host/base"), initial, time.Millisecond)

	final, err := Drive(context.Background(), st, s)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if final.StatusCode() != 200 {
		t.Fatalf("expected terminal 200 carrier, got %d", final.StatusCode())
	}
	if len(st.requests) != 3 {
		t.Fatalf("expected 3 poll ticks, got %d", len(st.requests))
	}
	if st.requests[0].URL != "https://host/op/1" {
		t.Fatalf("first poll against seeded URL, got %q", st.requests[0].URL)
	}
	if st.requests[1].URL != "https://host/op/2" || st.requests[2].URL != "https://host/op/2" {
		t.Fatalf("expected re-anchored polls, got %q then %q", st.requests[1].URL, st.requests[2].URL)
	}
}

func TestDrive_StopsOnPollRoundError(t *testing.T) {
	st := &scriptedTransport{responses: []transport.Response{
		respWith(202),
		respWith(418),
		respWith(200), // never reached
	}}

	initial := respWith(202, transport.Header{Name: LocationHeader, Value: "https://host/op"})
	s := DetectLocation(testDesc(200), originalReq("https://host/base"), initial, time.Millisecond)

	_, err := Drive(context.Background(), st, s)
	var pe *resterr.PollError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PollError, got %T: %v", err, err)
	}
	if len(st.requests) != 2 {
		t.Fatalf("expected loop to stop after the failed round, got %d ticks", len(st.requests))
	}
}

func TestDrive_TransportErrorStopsLoop(t *testing.T) {
	st := &scriptedTransport{}

	initial := respWith(202, transport.Header{Name: LocationHeader, Value: "https://host/op"})
	s := DetectLocation(testDesc(200), originalReq("https://host/base"), initial, time.Millisecond)

	_, err := Drive(context.Background(), st, s)
	if err == nil || err.Error() != "script exhausted" {
		t.Fatalf("expected transport error surfaced, got %v", err)
	}
}

func TestDrive_ContextCancelDuringWait(t *testing.T) {
	st := &scriptedTransport{responses: []transport.Response{respWith(200)}}

	initial := respWith(202, transport.Header{Name: LocationHeader, Value: "https://host/op"})
	s := DetectLocation(testDesc(200), originalReq("https://host/base"), initial, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Drive(ctx, st, s)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	if len(st.requests) != 0 {
		t.Fatalf("expected no poll after cancel, got %d", len(st.requests))
	}
}

package poll

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/loykin/apicall/internal/descriptor"
	"github.com/loykin/apicall/internal/resterr"
	"github.com/loykin/apicall/internal/transport"
)

// LocationStrategy polls the URL announced by the Location header. Two
// states: polling while the server answers 202, done on the first status in
// the operation's expected set. The terminal response is not interpreted
// further here; that is the caller's job.
type LocationStrategy struct {
	op       string
	expected func(int) bool
	url      string
	delay    time.Duration
	done     bool
}

// DetectLocation produces a LocationStrategy when the initial response
// announces a poll URL via the Location header. It declines (returns nil)
// when the header is absent or empty, when a relative reference cannot be
// resolved against the original request URL, or when the value is neither
// rooted nor an http(s) URL.
func DetectLocation(desc *descriptor.Descriptor, original *transport.Request, initial transport.Response, delay time.Duration) Strategy {
	loc := initial.Header(LocationHeader)
	if loc == "" {
		return nil
	}

	var pollURL string
	if strings.HasPrefix(loc, "/") {
		base, err := url.Parse(original.URL)
		if err != nil {
			return nil
		}
		ref, err := url.Parse(loc)
		if err != nil {
			return nil
		}
		pollURL = base.ResolveReference(ref).String()
	} else {
		lower := strings.ToLower(loc)
		if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
			return nil
		}
		pollURL = loc
	}

	return &LocationStrategy{
		op:       desc.Name,
		expected: desc.IsExpected,
		url:      pollURL,
		delay:    delay,
	}
}

func (s *LocationStrategy) CreatePollRequest() *transport.Request {
	return &transport.Request{Name: s.op, Method: http.MethodGet, URL: s.url}
}

func (s *LocationStrategy) UpdateFrom(resp transport.Response) (transport.Response, error) {
	status := resp.StatusCode()
	if status != http.StatusAccepted && !s.expected(status) {
		return resp, &resterr.PollError{Op: s.op, StatusCode: status}
	}

	if d, ok := RetryAfter(resp); ok {
		s.delay = d
	}

	if status == http.StatusAccepted {
		// The server may redirect the poll chain mid-flight.
		if loc := resp.Header(LocationHeader); loc != "" {
			s.url = loc
		}
	} else {
		s.done = true
	}
	return resp, nil
}

func (s *LocationStrategy) IsDone() bool { return s.done }

func (s *LocationStrategy) Delay() time.Duration { return s.delay }

package poll

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/loykin/apicall/internal/common"
	"github.com/loykin/apicall/internal/descriptor"
	"github.com/loykin/apicall/internal/transport"
)

const (
	// LocationHeader carries the poll URL of a location-signalled operation.
	LocationHeader = "Location"
	// RetryAfterHeader is the server's delay hint, in whole seconds.
	RetryAfterHeader = "Retry-After"
	// DefaultDelay applies when the caller gives no initial poll delay.
	DefaultDelay = 30 * time.Second
)

// Strategy drives one in-flight long-running operation. A strategy owns its
// poll state exclusively; it must not be shared across goroutines. Done is a
// one-way transition: once IsDone reports true it never reverts.
type Strategy interface {
	// CreatePollRequest builds the next poll request against the current
	// poll URL.
	CreatePollRequest() *transport.Request
	// UpdateFrom is the single mutator of poll state. It inspects a poll
	// response, updates done/URL/delay, and hands the response back for the
	// caller to inspect.
	UpdateFrom(resp transport.Response) (transport.Response, error)
	IsDone() bool
	// Delay is the wait before the next poll.
	Delay() time.Duration
}

// Detector inspects the original request and its initial response and
// returns a seeded Strategy, or nil to decline.
type Detector func(desc *descriptor.Descriptor, original *transport.Request, initial transport.Response, delay time.Duration) Strategy

// detectors is the fixed priority order of known signalling conventions.
var detectors = []Detector{
	DetectLocation,
}

// Detect tries each registered detector in priority order and returns the
// first strategy produced. A nil result means no long-running operation was
// started and the initial response is final.
func Detect(desc *descriptor.Descriptor, original *transport.Request, initial transport.Response, delay time.Duration) Strategy {
	if delay <= 0 {
		delay = DefaultDelay
	}
	for _, try := range detectors {
		if s := try(desc, original, initial, delay); s != nil {
			return s
		}
	}
	return nil
}

// RetryAfter reads the server delay hint from a response. The second return
// is false when the header is absent or not a non-negative integer.
func RetryAfter(resp transport.Response) (time.Duration, bool) {
	v := strings.TrimSpace(resp.Header(RetryAfterHeader))
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// Drive repeats {wait, poll, update} until the strategy reports done. Poll
// ticks are strictly sequential. The last response observed is returned as
// the operation's final state carrier. Abandoning the loop (ctx cancel)
// leaves the remote operation running.
func Drive(ctx context.Context, t transport.Transport, s Strategy) (transport.Response, error) {
	logger := common.GetLogger().WithComponent("poll")

	var last transport.Response
	for !s.IsDone() {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-time.After(s.Delay()):
		}

		req := s.CreatePollRequest()
		logger.Debug("polling", "url", req.URL, "operation", req.Name)
		resp, err := t.Send(ctx, req)
		if err != nil {
			return last, err
		}
		last, err = s.UpdateFrom(resp)
		if err != nil {
			return last, err
		}
	}
	return last, nil
}

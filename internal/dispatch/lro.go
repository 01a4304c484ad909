package dispatch

import (
	"context"
	"time"

	"github.com/loykin/apicall/internal/common"
	"github.com/loykin/apicall/internal/descriptor"
	"github.com/loykin/apicall/internal/poll"
)

// ExecuteAndWait performs the invocation and, when the initial response
// signals a long-running operation, drives it to its terminal state before
// interpreting the final response with the operation's declared shapes.
// When no poll strategy matches, the initial response is treated as final.
// initialDelay seeds the poll cadence; zero or negative uses poll.DefaultDelay.
func (d *Dispatcher) ExecuteAndWait(ctx context.Context, desc *descriptor.Descriptor, args descriptor.Args, initialDelay time.Duration) (any, error) {
	logger := common.GetLogger().WithComponent("dispatch").WithOperation(desc.Name)

	req, err := d.BuildRequest(desc, args)
	if err != nil {
		return nil, err
	}
	resp, err := d.Transport.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	if s := poll.Detect(desc, req, resp, initialDelay); s != nil {
		logger.Debug("long-running operation accepted", "status_code", resp.StatusCode())
		final, derr := poll.Drive(ctx, d.Transport, s)
		if derr != nil {
			return nil, derr
		}
		if final != nil {
			resp = final
		}
	}
	return d.interpret(desc, resp)
}

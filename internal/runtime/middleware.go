package runtime

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vinodismyname/mcpcsv/pkg/mcperr"
)

// Middleware wraps every tool handler with the Controller's admission rules:
// a bounded wait for a request slot, then a per-call deadline while the
// handler runs against its dataset.
type Middleware struct {
	ctrl *Controller
}

// NewMiddleware binds a Middleware to ctrl.
func NewMiddleware(ctrl *Controller) *Middleware {
	return &Middleware{ctrl: ctrl}
}

// ToolMiddleware satisfies mcp-go's tool handler middleware shape. Slot
// release is deferred so panics recovered upstream cannot leak capacity.
func (m *Middleware) ToolMiddleware(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		acquireCtx := ctx
		if m.ctrl.limits.AcquireRequestTimeout > 0 {
			var cancel context.CancelFunc
			acquireCtx, cancel = context.WithTimeout(ctx, m.ctrl.limits.AcquireRequestTimeout)
			defer cancel()
		}

		if err := m.ctrl.AcquireRequest(acquireCtx); err != nil {
			// Tool-level error rather than transport error: the client should
			// back off and retry the same call.
			return mcperr.Wrapf(mcperr.BusyResource, "concurrent request limit reached (max=%d)", m.ctrl.limits.MaxConcurrentRequests), nil
		}
		defer m.ctrl.ReleaseRequest()

		callCtx := ctx
		cancel := func() {}
		if m.ctrl.limits.OperationTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, m.ctrl.limits.OperationTimeout)
		}
		defer cancel()

		res, err := next(callCtx, req)

		// A deadline hit inside the handler surfaces as a timeout result, not
		// a raw context error.
		if errors.Is(err, context.DeadlineExceeded) ||
			(errors.Is(callCtx.Err(), context.DeadlineExceeded) && err == nil && res == nil) {
			return mcperr.New(mcperr.Timeout, "operation exceeded the configured time limit"), nil
		}

		return res, err
	}
}

package aurora

import (
	"context"
)

// AbortController owns one cancellation signal shared by every request
// dispatched with it. Firing the signal asks all such in-flight
// transports to reject; it does not forcibly terminate them, and the
// client's cleanup (gate release, loading callback) still runs once
// each call settles.
//
// A fired controller stays fired. The client lazily replaces its own
// default controller after AbortAll, so later calls get a live signal;
// caller-owned controllers passed per call are never replaced.
type AbortController struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewAbortController creates a controller with a fresh, unfired signal.
func NewAbortController() *AbortController {
	ctx, cancel := context.WithCancel(context.Background())
	return &AbortController{ctx: ctx, cancel: cancel}
}

// Abort fires the signal. Safe to call more than once; only the first
// call has any effect.
func (a *AbortController) Abort() {
	a.cancel()
}

// Aborted reports whether the signal has fired.
func (a *AbortController) Aborted() bool {
	return a.ctx.Err() != nil
}

// Context returns the context carrying this controller's signal.
func (a *AbortController) Context() context.Context {
	return a.ctx
}

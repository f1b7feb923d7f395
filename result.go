package aurora

import (
	"context"
)

// Result is the outcome of one dispatched call. Exactly one of Response
// and Err is set. The Result also remembers the method and the per-call
// options it was issued with, so the same request can be re-issued via
// Recall.
type Result struct {
	// Response is the transport response on success, nil otherwise.
	Response *Response
	// Err is the classified failure when the request did not succeed,
	// nil otherwise.
	Err *RequestError

	client *Client
	method string
	opts   CallOptions
}

// HasError reports whether the call settled with a classified failure.
func (r *Result) HasError() bool {
	return r.Err != nil
}

// Recall re-issues the original call with overrides layered on top of
// the options captured at call time. The re-issue is a full Call: it
// goes through admission again and re-reads the client's current
// defaults, which may have changed since the original call. Recall is
// not memoized; it may be invoked any number of times, concurrently,
// each producing an independent Result.
func (r *Result) Recall(ctx context.Context, overrides CallOptions) (*Result, error) {
	return r.client.Call(ctx, r.method, r.opts.merge(overrides))
}

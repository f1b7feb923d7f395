package aurora

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/Ekott2006/aurora-go/internal/urlutil"
	"golang.org/x/time/rate"
)

// Client orchestrates HTTP requests through a pluggable Transport,
// layering concurrency gating, shared defaults (headers, params,
// timeout), abort signalling, rate limiting, middleware, metrics and
// debug logging on top of it. It is safe for concurrent use.
//
// Expected request failures (network faults, timeouts, aborts, non-2xx
// statuses) come back as data on the Result; the error returned by Call
// is reserved for client misuse (exhausted concurrency budget,
// unresolvable URL) and for unclassified defects.
type Client struct {
	baseURL    string
	transport  Transport
	middleware []Middleware
	gate       *gate
	defaults   *defaultStore
	limiter    *rate.Limiter
	metrics    *MetricsCollector
	debug      *DebugConfig
	logger     Logger

	controllerMu sync.Mutex
	controller   *AbortController

	validationError error
}

// New constructs a Client using the provided functional options. A best
// effort validation is performed; call IsValid / ValidationError for
// errors.
func New(options ...Option) *Client {
	client := &Client{
		transport:  NewHTTPTransport(nil),
		middleware: []Middleware{},
		gate:       newGate(0),
		defaults:   newDefaultStore(),
		controller: NewAbortController(),
		debug:      DefaultDebugConfig(),
	}

	for _, option := range options {
		option(client)
	}

	if err := client.ValidateConfiguration(); err != nil {
		client.validationError = err
	}

	return client
}

// Call dispatches one request and returns its Result. The ctx bounds
// this call in addition to the client's abort signal; either firing
// rejects the in-flight transport exchange.
//
// A non-nil error means the call never produced a request outcome: the
// concurrency gate or rate limiter rejected it, no target URL could be
// resolved, or the transport failed in an unclassified way. Ordinary
// request failures are reported on the Result instead.
func (c *Client) Call(ctx context.Context, method string, opts CallOptions) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	var requestID string
	if c.debug != nil && c.debug.Enabled && c.debug.RequestIDGen != nil {
		requestID = c.debug.RequestIDGen()
	}

	if c.limiter != nil && !c.limiter.Allow() {
		if c.debug != nil && c.debug.Enabled && c.debug.LogGate && c.logger != nil {
			c.logger.Warn("Rate limit exceeded", "requestID", requestID, "method", method, "endpoint", opts.Endpoint)
		}
		c.metrics.RecordRateLimitDenial(method)
		return nil, &InstanceError{Op: "call", Message: "rate limited", Cause: ErrRateLimited}
	}

	if !c.gate.admit() {
		if c.debug != nil && c.debug.Enabled && c.debug.LogGate && c.logger != nil {
			c.logger.Warn("Request limit exceeded", "requestID", requestID, "method", method, "endpoint", opts.Endpoint)
		}
		c.metrics.RecordGateRejection(method)
		return nil, &InstanceError{Op: "call", Message: "request limit exceeded", Cause: ErrLimitExceeded}
	}

	// The slot is held from here on; release exactly once on every exit
	// path, and close out the loading callback iff it was opened.
	loadingStarted := false
	defer func() {
		c.gate.release()
		if loadingStarted && opts.OnLoading != nil {
			opts.OnLoading(false)
		}
	}()

	controller := c.resolveController(opts.Controller)

	target, err := urlutil.Join(c.baseURL, opts.Endpoint)
	if err != nil {
		return nil, &InstanceError{Op: "call", Message: "url cannot be empty", Cause: ErrEmptyURL}
	}

	snapshot := opts.clone()

	req := &Request{
		Method:  method,
		URL:     target,
		Headers: c.defaults.mergeHeaders(opts.Headers),
		Params:  c.defaults.mergeParams(opts.Params),
		Body:    opts.Body,
		Timeout: c.defaults.effectiveTimeout(opts.Timeout),
	}

	// Bind the request to the abort signal, and mirror the caller's ctx
	// into it so either one rejects the exchange.
	reqCtx, cancel := context.WithCancel(controller.Context())
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	req = req.WithContext(reqCtx)

	if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
		c.logger.Debug("Starting request", "requestID", requestID, "method", method, "url", target)
	}
	c.metrics.RecordRequestStart(method, opts.Endpoint)
	defer c.metrics.RecordRequestEnd(method, opts.Endpoint)

	if opts.OnLoading != nil {
		opts.OnLoading(true)
		loadingStarted = true
	}

	resp, err := c.dispatch(req)

	duration := time.Since(start)
	result := &Result{
		Response: resp,
		client:   c,
		method:   method,
		opts:     snapshot,
	}

	if err != nil {
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			// Unclassified failure: a defect in a middleware or a
			// custom transport. Propagate instead of masking it as a
			// request outcome.
			c.metrics.RecordRequest(method, opts.Endpoint, 0, duration)
			return nil, err
		}
		reqErr.RequestID = requestID
		reqErr.Duration = duration
		if reqErr.StatusCode == 0 {
			// Custom transports may classify without an HTTP status.
			reqErr.StatusCode = defaultErrorStatus
		}
		result.Response = nil
		result.Err = reqErr

		if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
			c.logger.Debug("Request failed", "requestID", requestID, "method", method, "url", target, "errorType", reqErr.Type, "statusCode", reqErr.StatusCode)
		}
		if IsAborted(reqErr) {
			c.metrics.RecordAbort(method, opts.Endpoint)
		}
		c.metrics.RecordError(reqErr.Type, method, opts.Endpoint)
		c.metrics.RecordRequest(method, opts.Endpoint, reqErr.StatusCode, duration)
		return result, nil
	}

	if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
		c.logger.Debug("Request completed", "requestID", requestID, "method", method, "url", target, "statusCode", resp.StatusCode)
	}
	c.metrics.RecordRequest(method, opts.Endpoint, resp.StatusCode, duration)
	return result, nil
}

// Get issues a GET using the same policies followed by Call.
func (c *Client) Get(ctx context.Context, opts CallOptions) (*Result, error) {
	return c.Call(ctx, http.MethodGet, opts)
}

// Post issues a POST using the same policies followed by Call.
func (c *Client) Post(ctx context.Context, opts CallOptions) (*Result, error) {
	return c.Call(ctx, http.MethodPost, opts)
}

// Put issues a PUT using the same policies followed by Call.
func (c *Client) Put(ctx context.Context, opts CallOptions) (*Result, error) {
	return c.Call(ctx, http.MethodPut, opts)
}

// Delete issues a DELETE using the same policies followed by Call.
func (c *Client) Delete(ctx context.Context, opts CallOptions) (*Result, error) {
	return c.Call(ctx, http.MethodDelete, opts)
}

// dispatch runs the middleware chain ending at the transport.
func (c *Client) dispatch(req *Request) (*Response, error) {
	if len(c.middleware) == 0 {
		return c.transport.Do(req)
	}

	current := c.transport
	for i := len(c.middleware) - 1; i >= 0; i-- {
		middleware := c.middleware[i]
		next := current
		current = TransportFunc(func(r *Request) (*Response, error) {
			return middleware(r, next)
		})
	}

	return current.Do(req)
}

// resolveController picks the effective abort controller for one call:
// the per-call override when given, otherwise the client's default. A
// fired default controller is replaced with a fresh one first, so calls
// issued after AbortAll get a live signal.
func (c *Client) resolveController(override *AbortController) *AbortController {
	if override != nil {
		return override
	}
	c.controllerMu.Lock()
	defer c.controllerMu.Unlock()
	if c.controller.Aborted() {
		c.controller = NewAbortController()
	}
	return c.controller
}

// AbortAll fires the client's shared abort signal, asking every
// in-flight call that uses the default controller to reject. Calls that
// supplied their own controller are unaffected. Subsequent calls obtain
// a fresh default signal automatically.
func (c *Client) AbortAll() {
	c.controllerMu.Lock()
	controller := c.controller
	c.controllerMu.Unlock()
	controller.Abort()
}

// SetMaxConcurrentRequests sets the concurrency ceiling. A positive
// limit caps the number of in-flight requests; zero or a negative value
// removes the cap.
func (c *Client) SetMaxConcurrentRequests(limit int) {
	c.gate.setLimit(limit)
}

// InFlight returns the number of requests currently past admission and
// not yet settled.
func (c *Client) InFlight() int {
	return c.gate.inFlight()
}

// AddHeaders merges h into the default headers applied to every call.
// Existing keys are overwritten.
func (c *Client) AddHeaders(h map[string]string) {
	c.defaults.addHeaders(h)
}

// RemoveHeaders removes the named default headers; with no arguments it
// clears them all.
func (c *Client) RemoveHeaders(names ...string) {
	c.defaults.removeHeaders(names...)
}

// AddParams merges p into the default query params applied to every
// call. Existing keys are overwritten.
func (c *Client) AddParams(p map[string]any) {
	c.defaults.addParams(p)
}

// RemoveParams removes the named default params; with no arguments it
// clears them all.
func (c *Client) RemoveParams(names ...string) {
	c.defaults.removeParams(names...)
}

// SetTimeout sets the default per-request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.defaults.setTimeout(timeout)
}

// RemoveTimeout clears the default timeout; calls without a per-call
// timeout then run unbounded (the transport may still impose its own).
func (c *Client) RemoveTimeout() {
	c.defaults.removeTimeout()
}

// IsValid reports whether configuration validation passed at construction.
func (c *Client) IsValid() bool {
	return c.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (c *Client) ValidationError() error {
	return c.validationError
}

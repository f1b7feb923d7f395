package aurora

import (
	"context"
	"time"
)

// Transport performs the actual network exchange for one request. It is
// the external collaborator the client orchestrates around; the bundled
// implementation wraps net/http, but anything satisfying this interface
// can be injected (see WithTransport).
type Transport interface {
	// Do sends the request and returns a response or an error. Errors
	// that represent expected request-level failures (network faults,
	// timeouts, aborts, non-2xx statuses) must be *RequestError so the
	// client can classify them; any other error is treated as a
	// programming defect and propagated to the caller unmodified.
	Do(req *Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(req *Request) (*Response, error)

func (f TransportFunc) Do(req *Request) (*Response, error) {
	return f(req)
}

// Request is the fully-resolved request handed to the Transport: URL
// already normalized, headers and params already merged with the
// client's defaults, context already bound to the effective abort
// signal and timeout.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Params  map[string]any
	Body    []byte
	Timeout time.Duration

	ctx context.Context
}

// Context returns the context carrying the abort signal for this
// request. It is never nil.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// WithContext returns a shallow copy of the request using ctx.
func (r *Request) WithContext(ctx context.Context) *Request {
	r2 := *r
	r2.ctx = ctx
	return &r2
}

// Response is the transport's answer to a successfully dispatched
// request. Body is fully buffered.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// CallOptions carries the per-call inputs to Client.Call. Everything is
// optional; zero values fall back to the client's defaults. CallOptions
// are never retained mutably by the client: Result holds an immutable
// snapshot for Recall.
type CallOptions struct {
	// Endpoint is joined onto the client's base URL. At least one of
	// the two must be non-empty.
	Endpoint string
	// Headers override same-named default headers for this call only.
	Headers map[string]string
	// Params override same-named default query params for this call only.
	Params map[string]any
	// Body is the raw request body, if any.
	Body []byte
	// Timeout overrides the default timeout for this call when > 0.
	Timeout time.Duration
	// Controller opts this call out of the client's shared abort
	// signal. When nil the client's default controller is used.
	Controller *AbortController
	// OnLoading, when set, is invoked with true immediately before
	// dispatch and false exactly once after the call settles, on every
	// outcome.
	OnLoading func(loading bool)
}

// merge layers over on top of o, field by field: a field set on over
// replaces the original wholesale (maps are not merged key-wise here;
// key-wise merging against client defaults happens at dispatch time).
func (o CallOptions) merge(over CallOptions) CallOptions {
	out := o
	if over.Endpoint != "" {
		out.Endpoint = over.Endpoint
	}
	if over.Headers != nil {
		out.Headers = over.Headers
	}
	if over.Params != nil {
		out.Params = over.Params
	}
	if over.Body != nil {
		out.Body = over.Body
	}
	if over.Timeout > 0 {
		out.Timeout = over.Timeout
	}
	if over.Controller != nil {
		out.Controller = over.Controller
	}
	if over.OnLoading != nil {
		out.OnLoading = over.OnLoading
	}
	return out
}

// clone deep-copies the maps and body so the snapshot held by a Result
// cannot be mutated through the caller's references.
func (o CallOptions) clone() CallOptions {
	out := o
	if o.Headers != nil {
		out.Headers = make(map[string]string, len(o.Headers))
		for k, v := range o.Headers {
			out.Headers[k] = v
		}
	}
	if o.Params != nil {
		out.Params = make(map[string]any, len(o.Params))
		for k, v := range o.Params {
			out.Params[k] = v
		}
	}
	if o.Body != nil {
		out.Body = append([]byte(nil), o.Body...)
	}
	return out
}

// Middleware wraps transport dispatch for cross-cutting concerns
// (auth, tracing, request mutation). Middleware run in registration
// order, outermost first.
type Middleware func(req *Request, next Transport) (*Response, error)

// Option configures a Client at construction time.
type Option func(*Client)

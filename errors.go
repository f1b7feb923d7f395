package aurora

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common failure scenarios
var (
	// ErrLimitExceeded is returned when the concurrency gate rejects a call.
	ErrLimitExceeded = errors.New("aurora: request limit exceeded")

	// ErrRateLimited is returned when a call is denied by the rate limiter.
	ErrRateLimited = errors.New("aurora: rate limited")

	// ErrEmptyURL is returned when neither a base URL nor an endpoint was given.
	ErrEmptyURL = errors.New("aurora: url cannot be empty")
)

// Error type identifiers used by RequestError.Type.
const (
	ErrorTypeNetwork = "NetworkError"
	ErrorTypeTimeout = "TimeoutError"
	ErrorTypeAborted = "AbortedError"
	ErrorTypeHTTP    = "HTTPError"
)

// defaultErrorStatus is the status synthesized onto a RequestError when
// the underlying failure carried no HTTP status of its own.
const defaultErrorStatus = 500

// InstanceError reports misuse of the client itself: an exhausted
// concurrency budget, an unresolvable URL, or invalid construction
// options. It travels on the returned-error channel of Call, unlike
// RequestError which is surfaced as data on the Result.
type InstanceError struct {
	Op      string
	Message string
	Cause   error
}

// Error implements error interface.
func (e *InstanceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("aurora: %s: %s (%v)", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("aurora: %s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause.
func (e *InstanceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// RequestConfig records the request as it was dispatched, for error
// reporting and debugging.
type RequestConfig struct {
	Method  string
	URL     string
	Headers map[string]string
	Params  map[string]any
	Timeout time.Duration
}

// RequestError is a classified request-level failure: the network
// exchange was attempted (or aborted) and did not produce a successful
// response. It is returned as data on the Result, never as a Call
// error, so callers branch on Result.HasError without error handling
// for ordinary failures.
type RequestError struct {
	Type       string
	Message    string
	Code       string
	StatusCode int
	// Response carries the failing response when an HTTP exchange
	// completed with a non-success status; nil when the failure
	// happened before any response arrived.
	Response  *Response
	Config    *RequestConfig
	RequestID string
	Timestamp time.Time
	Duration  time.Duration
	Cause     error
}

// Error implements error interface.
func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("[%s] %s", e.RequestID, msg)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is.
func (e *RequestError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*RequestError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *RequestError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Type: %s\n", e.Type)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.RequestID != "" {
		info += fmt.Sprintf("Request ID: %s\n", e.RequestID)
	}
	if e.Code != "" {
		info += fmt.Sprintf("Code: %s\n", e.Code)
	}
	if e.StatusCode > 0 {
		info += fmt.Sprintf("Status Code: %d\n", e.StatusCode)
	}
	if e.Config != nil {
		info += fmt.Sprintf("Method: %s\n", e.Config.Method)
		info += fmt.Sprintf("URL: %s\n", e.Config.URL)
	}
	if !e.Timestamp.IsZero() {
		info += fmt.Sprintf("Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	}
	if e.Duration > 0 {
		info += fmt.Sprintf("Duration: %v\n", e.Duration)
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}

// IsAborted reports whether err is a request failure caused by a fired
// abort signal.
func IsAborted(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Type == ErrorTypeAborted
	}
	return false
}

// IsTimeout reports whether err is a request failure caused by an
// expired timeout.
func IsTimeout(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Type == ErrorTypeTimeout
	}
	return false
}

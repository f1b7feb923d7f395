// Package aurora provides a gated HTTP request orchestration client
// layered over a pluggable transport:
//
//   - Concurrency gating (admission against a configurable in-flight cap)
//   - Shared default headers, query params and timeout, merged per call
//   - Abort signalling (cancel everything in flight with one call)
//   - Request recall (re-issue a prior request with overridden options)
//   - Rate limiting (token bucket)
//   - Middleware chain for cross-cutting concerns (auth, tracing, etc.)
//   - Prometheus metrics and lightweight structured debug logging
//
// Design goals:
//   - Small surface area – functional options configure everything
//   - Expected request failures are data on the Result, not returned errors
//   - Safe concurrent use of a single *Client instance
//   - Extensibility via user supplied middleware & pluggable transport / metrics
//
// Typical usage:
//
//	client := aurora.New(
//	    aurora.WithBaseURL("https://api.example.com"),
//	    aurora.WithMaxConcurrentRequests(8),
//	    aurora.WithTimeout(10*time.Second),
//	)
//	client.AddHeaders(map[string]string{"Authorization": "Bearer " + token})
//
//	res, err := client.Get(ctx, aurora.CallOptions{Endpoint: "/v1/items"})
//	if err != nil {
//	    // client misuse: gate exhausted, empty URL, programming defect
//	}
//	if res.HasError() {
//	    // ordinary request failure, classified in res.Err
//	}
//
// The error returned by Call/Get/... is reserved for misuse of the
// client itself; inspect Result.HasError for request outcomes and use
// Result.Recall to re-issue a call with overrides.
package aurora

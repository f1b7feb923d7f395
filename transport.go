package aurora

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// httpTransport is the bundled Transport over net/http. It encodes
// params into the query string, applies headers, enforces the timeout
// through the request context, buffers the response body and classifies
// failures into *RequestError.
type httpTransport struct {
	client *http.Client
}

// NewHTTPTransport wraps client into a Transport. A nil client uses
// http.DefaultClient. Timeouts are applied per request via context, so
// the client's own Timeout field is left alone.
func NewHTTPTransport(client *http.Client) Transport {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpTransport{client: client}
}

func (t *httpTransport) Do(req *Request) (*Response, error) {
	ctx := req.Context()
	cancel := context.CancelFunc(func() {})
	if req.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
	}
	defer cancel()

	target := req.URL
	if len(req.Params) > 0 {
		query, err := encodeParams(req.Params)
		if err != nil {
			return nil, err
		}
		sep := "?"
		if u, perr := url.Parse(req.URL); perr == nil && u.RawQuery != "" {
			sep = "&"
		}
		target = req.URL + sep + query
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		// Malformed method or URL is a programming defect, not a
		// request-level failure.
		return nil, err
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, classifyDialError(req, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyDialError(req, err)
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}
	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       buf,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{
			Type:       ErrorTypeHTTP,
			Message:    fmt.Sprintf("request failed with status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
			Response:   response,
			Config:     requestConfig(req),
			Timestamp:  time.Now(),
		}
	}

	return response, nil
}

// classifyDialError maps a net/http error onto the request error
// taxonomy. Context cancellation means the abort signal fired; a
// deadline means the timeout elapsed; everything else is a network
// fault. All three carry the synthesized default status since no HTTP
// exchange completed.
func classifyDialError(req *Request, err error) *RequestError {
	reqErr := &RequestError{
		Type:       ErrorTypeNetwork,
		Message:    "network request failed",
		Code:       "ECONNFAILED",
		StatusCode: defaultErrorStatus,
		Config:     requestConfig(req),
		Timestamp:  time.Now(),
		Cause:      err,
	}
	switch {
	case errors.Is(err, context.Canceled):
		reqErr.Type = ErrorTypeAborted
		reqErr.Message = "request aborted"
		reqErr.Code = "ECONNABORTED"
	case errors.Is(err, context.DeadlineExceeded):
		reqErr.Type = ErrorTypeTimeout
		reqErr.Message = "request timed out"
		reqErr.Code = "ETIMEDOUT"
	}
	return reqErr
}

func requestConfig(req *Request) *RequestConfig {
	return &RequestConfig{
		Method:  req.Method,
		URL:     req.URL,
		Headers: req.Headers,
		Params:  req.Params,
		Timeout: req.Timeout,
	}
}

// encodeParams renders params as an URL-encoded query string. Scalars
// are stringified; one level of nested map is flattened into bracket
// notation (filter[name]=x). Deeper nesting is rejected.
func encodeParams(params map[string]any) (string, error) {
	values := url.Values{}
	for key, val := range params {
		switch v := val.(type) {
		case map[string]any:
			for sub, subVal := range v {
				if _, nested := subVal.(map[string]any); nested {
					return "", fmt.Errorf("aurora: param %q: nesting deeper than one level is not supported", key)
				}
				values.Set(fmt.Sprintf("%s[%s]", key, sub), fmt.Sprint(subVal))
			}
		case []any:
			for _, item := range v {
				values.Add(key, fmt.Sprint(item))
			}
		default:
			values.Set(key, fmt.Sprint(v))
		}
	}
	return values.Encode(), nil
}

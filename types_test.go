package aurora

import (
	"context"
	"testing"
	"time"
)

func TestCallOptionsMerge(t *testing.T) {
	original := CallOptions{
		Endpoint: "/v1/items",
		Headers:  map[string]string{"A": "1"},
		Params:   map[string]any{"page": 1},
		Body:     []byte("body"),
		Timeout:  time.Second,
	}

	merged := original.merge(CallOptions{
		Headers: map[string]string{"B": "2"},
		Timeout: 2 * time.Second,
	})

	if merged.Endpoint != "/v1/items" {
		t.Errorf("Endpoint = %q, want original preserved", merged.Endpoint)
	}
	// Overrides replace fields wholesale, they are not merged key-wise
	if _, ok := merged.Headers["A"]; ok {
		t.Error("override Headers merged key-wise, want replacement")
	}
	if merged.Headers["B"] != "2" {
		t.Errorf("Headers = %v, want override map", merged.Headers)
	}
	if merged.Params["page"] != 1 {
		t.Errorf("Params = %v, want original preserved", merged.Params)
	}
	if merged.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want override", merged.Timeout)
	}
	if string(merged.Body) != "body" {
		t.Errorf("Body = %q, want original preserved", merged.Body)
	}
}

func TestCallOptionsMergeZeroIsIdentity(t *testing.T) {
	controller := NewAbortController()
	original := CallOptions{
		Endpoint:   "/v1/items",
		Headers:    map[string]string{"A": "1"},
		Controller: controller,
	}

	merged := original.merge(CallOptions{})

	if merged.Endpoint != original.Endpoint || merged.Controller != controller {
		t.Error("merging zero options changed the original")
	}
	if merged.Headers["A"] != "1" {
		t.Errorf("Headers = %v, want original", merged.Headers)
	}
}

func TestCallOptionsClone(t *testing.T) {
	original := CallOptions{
		Headers: map[string]string{"A": "1"},
		Params:  map[string]any{"page": 1},
		Body:    []byte("body"),
	}

	snapshot := original.clone()
	original.Headers["A"] = "mutated"
	original.Params["page"] = 99
	original.Body[0] = 'X'

	if snapshot.Headers["A"] != "1" {
		t.Error("clone shares the headers map")
	}
	if snapshot.Params["page"] != 1 {
		t.Error("clone shares the params map")
	}
	if string(snapshot.Body) != "body" {
		t.Error("clone shares the body slice")
	}
}

func TestRequestContextDefaultsToBackground(t *testing.T) {
	req := &Request{Method: "GET", URL: "https://api.x.com"}

	if req.Context() == nil {
		t.Fatal("Context() returned nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bound := req.WithContext(ctx)
	if bound.Context() != ctx {
		t.Error("WithContext did not bind the context")
	}
	if req.Context() == ctx {
		t.Error("WithContext mutated the receiver")
	}
}

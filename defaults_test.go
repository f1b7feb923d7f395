package aurora

import (
	"testing"
	"time"
)

func TestDefaultStoreAddRemoveHeaders(t *testing.T) {
	d := newDefaultStore()

	d.addHeaders(map[string]string{"A": "1"})
	d.addHeaders(map[string]string{"A": "2", "B": "3"})
	d.removeHeaders("A")

	merged := d.mergeHeaders(nil)
	if len(merged) != 1 || merged["B"] != "3" {
		t.Errorf("headers after add/add/remove = %v, want map[B:3]", merged)
	}
}

func TestDefaultStoreRemoveHeadersAll(t *testing.T) {
	d := newDefaultStore()
	d.addHeaders(map[string]string{"A": "1", "B": "2", "C": "3"})

	d.removeHeaders()

	if merged := d.mergeHeaders(nil); len(merged) != 0 {
		t.Errorf("headers after removeHeaders() = %v, want empty", merged)
	}
}

func TestDefaultStoreRemoveAbsentHeaderIsNoop(t *testing.T) {
	d := newDefaultStore()
	d.addHeaders(map[string]string{"A": "1"})

	d.removeHeaders("missing")

	if merged := d.mergeHeaders(nil); merged["A"] != "1" {
		t.Errorf("headers = %v, want A preserved", merged)
	}
}

func TestDefaultStoreRemoveParamsAll(t *testing.T) {
	d := newDefaultStore()
	d.addParams(map[string]any{"page": 1, "limit": 50})

	d.removeParams()

	if merged := d.mergeParams(nil); len(merged) != 0 {
		t.Errorf("params after removeParams() = %v, want empty", merged)
	}
}

func TestDefaultStoreMergePrecedence(t *testing.T) {
	d := newDefaultStore()
	d.addHeaders(map[string]string{"A": "default", "B": "default"})
	d.addParams(map[string]any{"page": 1, "limit": 50})

	headers := d.mergeHeaders(map[string]string{"A": "call"})
	if headers["A"] != "call" {
		t.Errorf("per-call header lost: got %q, want %q", headers["A"], "call")
	}
	if headers["B"] != "default" {
		t.Errorf("non-conflicting default dropped: got %q, want %q", headers["B"], "default")
	}

	params := d.mergeParams(map[string]any{"page": 7})
	if params["page"] != 7 {
		t.Errorf("per-call param lost: got %v, want 7", params["page"])
	}
	if params["limit"] != 50 {
		t.Errorf("non-conflicting default param dropped: got %v, want 50", params["limit"])
	}
}

func TestDefaultStoreMergeReturnsCopy(t *testing.T) {
	d := newDefaultStore()
	d.addHeaders(map[string]string{"A": "1"})

	merged := d.mergeHeaders(nil)
	merged["A"] = "mutated"
	merged["X"] = "injected"

	fresh := d.mergeHeaders(nil)
	if fresh["A"] != "1" {
		t.Errorf("mutating merge result leaked into store: %v", fresh)
	}
	if _, ok := fresh["X"]; ok {
		t.Error("key injected through merge result reached the store")
	}
}

func TestDefaultStoreTimeout(t *testing.T) {
	d := newDefaultStore()

	if got := d.effectiveTimeout(0); got != 0 {
		t.Errorf("effectiveTimeout with nothing set = %v, want 0", got)
	}

	d.setTimeout(5 * time.Second)
	if got := d.effectiveTimeout(0); got != 5*time.Second {
		t.Errorf("effectiveTimeout = %v, want 5s", got)
	}

	// Per-call value wins over the default
	if got := d.effectiveTimeout(time.Second); got != time.Second {
		t.Errorf("effectiveTimeout with per-call = %v, want 1s", got)
	}

	d.removeTimeout()
	if got := d.effectiveTimeout(0); got != 0 {
		t.Errorf("effectiveTimeout after removeTimeout = %v, want 0", got)
	}
}

package aurora

import (
	"sync"
	"time"
)

// defaultStore holds the client-wide defaults applied to every call:
// headers, query params and timeout. It lives for the lifetime of the
// client and is mutated only through the client's Add/Remove/Set
// operations. Reads hand out copies so a call can never alias the
// shared maps.
type defaultStore struct {
	mu         sync.RWMutex
	headers    map[string]string
	params     map[string]any
	timeout    time.Duration
	hasTimeout bool
}

func newDefaultStore() *defaultStore {
	return &defaultStore{
		headers: make(map[string]string),
		params:  make(map[string]any),
	}
}

// addHeaders merges h into the default headers. Existing keys are
// overwritten, keys not named in h are left alone.
func (d *defaultStore) addHeaders(h map[string]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, v := range h {
		d.headers[k] = v
	}
}

// removeHeaders removes the named keys; with no arguments it clears all
// default headers. Absent keys are no-ops.
func (d *defaultStore) removeHeaders(names ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(names) == 0 {
		d.headers = make(map[string]string)
		return
	}
	for _, name := range names {
		delete(d.headers, name)
	}
}

// addParams merges p into the default query params, same semantics as
// addHeaders.
func (d *defaultStore) addParams(p map[string]any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, v := range p {
		d.params[k] = v
	}
}

// removeParams removes the named keys; with no arguments it clears all
// default params.
func (d *defaultStore) removeParams(names ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(names) == 0 {
		d.params = make(map[string]any)
		return
	}
	for _, name := range names {
		delete(d.params, name)
	}
}

func (d *defaultStore) setTimeout(timeout time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timeout = timeout
	d.hasTimeout = true
}

func (d *defaultStore) removeTimeout() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timeout = 0
	d.hasTimeout = false
}

// mergeHeaders returns the defaults overlaid with the per-call headers.
// Per-call entries win on conflict; the result is a fresh map.
func (d *defaultStore) mergeHeaders(call map[string]string) map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	merged := make(map[string]string, len(d.headers)+len(call))
	for k, v := range d.headers {
		merged[k] = v
	}
	for k, v := range call {
		merged[k] = v
	}
	return merged
}

// mergeParams returns the defaults overlaid with the per-call params.
// The merge is shallow: nested values are taken wholesale from whichever
// side wins.
func (d *defaultStore) mergeParams(call map[string]any) map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	merged := make(map[string]any, len(d.params)+len(call))
	for k, v := range d.params {
		merged[k] = v
	}
	for k, v := range call {
		merged[k] = v
	}
	return merged
}

// effectiveTimeout resolves the timeout for one call: the per-call
// value when positive, else the default when set, else zero (transport
// decides).
func (d *defaultStore) effectiveTimeout(call time.Duration) time.Duration {
	if call > 0 {
		return call
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.hasTimeout {
		return d.timeout
	}
	return 0
}

package aurora

import (
	"sync/atomic"
)

// unlimited disables the gate's upper bound.
const unlimited = int64(-1)

// gate tracks the number of requests currently in flight against a
// configurable ceiling. Admission and release are lock-free so the gate
// is safe under goroutine-per-call dispatch.
type gate struct {
	max     int64
	current int64
}

func newGate(limit int) *gate {
	g := &gate{max: unlimited}
	g.setLimit(limit)
	return g
}

// admit reserves a slot iff the in-flight count is below the limit.
// Every successful admit must be paired with exactly one release.
func (g *gate) admit() bool {
	limit := atomic.LoadInt64(&g.max)
	for {
		current := atomic.LoadInt64(&g.current)
		if limit != unlimited && current >= limit {
			return false
		}
		if atomic.CompareAndSwapInt64(&g.current, current, current+1) {
			return true
		}
		// CAS lost to a concurrent admit/release, retry
	}
}

// release returns a previously admitted slot.
func (g *gate) release() {
	atomic.AddInt64(&g.current, -1)
}

// setLimit sets the ceiling to limit when positive; zero or negative
// means unbounded. In-flight requests are never evicted by a lower
// limit, the new ceiling only applies to subsequent admissions.
func (g *gate) setLimit(limit int) {
	if limit > 0 {
		atomic.StoreInt64(&g.max, int64(limit))
		return
	}
	atomic.StoreInt64(&g.max, unlimited)
}

// inFlight returns the number of currently admitted requests.
func (g *gate) inFlight() int {
	return int(atomic.LoadInt64(&g.current))
}

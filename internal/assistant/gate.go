package assistant

import (
	"time"

	"go.uber.org/atomic"
)

// minRequestInterval is the global floor between any two accepted requests.
const minRequestInterval = 1500 * time.Millisecond

// RequestGate is a process-wide soft limiter. It only throttles accidental
// floods from a single dashboard session; it holds no per-source identity and
// is not a security control.
type RequestGate struct {
	lastRequest atomic.Int64 // unix millis of the last accepted request
	minInterval time.Duration
}

func NewRequestGate(minInterval time.Duration) *RequestGate {
	if minInterval <= 0 {
		minInterval = minRequestInterval
	}
	return &RequestGate{minInterval: minInterval}
}

// Admit reports whether a request arriving at now may proceed. Accepting
// advances the stored instant; rejecting leaves it alone. Two near-
// simultaneous requests can both read a stale value and both pass, which is
// fine for a soft limiter.
func (g *RequestGate) Admit(now time.Time) bool {
	last := g.lastRequest.Load()
	if now.UnixMilli()-last < g.minInterval.Milliseconds() {
		return false
	}
	g.lastRequest.Store(now.UnixMilli())
	return true
}

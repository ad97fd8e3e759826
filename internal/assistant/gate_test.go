package assistant

import (
	"testing"
	"time"
)

func TestRequestGateAdmit(t *testing.T) {
	start := time.Date(2025, 11, 19, 12, 0, 0, 0, time.UTC)
	g := NewRequestGate(1500 * time.Millisecond)

	if !g.Admit(start) {
		t.Fatal("first request should be admitted")
	}
	if g.Admit(start.Add(1499 * time.Millisecond)) {
		t.Error("request inside the interval should be rejected")
	}
	if !g.Admit(start.Add(1500 * time.Millisecond)) {
		t.Error("request at exactly the interval should be admitted")
	}
}

func TestRequestGateRejectKeepsInstant(t *testing.T) {
	start := time.Date(2025, 11, 19, 12, 0, 0, 0, time.UTC)
	g := NewRequestGate(1500 * time.Millisecond)

	g.Admit(start)
	g.Admit(start.Add(time.Second)) // rejected

	// The rejection must not restart the interval.
	if !g.Admit(start.Add(1600 * time.Millisecond)) {
		t.Error("interval should be measured from the last accepted request")
	}
}

package assistant

import (
	"testing"
	"time"

	"securehome/server/internal/interfaces"
)

func TestFormatVisitor(t *testing.T) {
	v := interfaces.VisitorRecord{
		ID:        7,
		Name:      "Alice Smith",
		Purpose:   "Delivery",
		Timestamp: time.Date(2025, 11, 19, 9, 55, 0, 0, time.UTC),
	}

	got := FormatVisitor(v, time.UTC)
	want := "• Alice Smith — 2025-11-19 09:55:00 (Purpose: Delivery, ID: 7)"
	if got != want {
		t.Errorf("FormatVisitor = %q, want %q", got, want)
	}
}

func TestFormatVisitorConvertsTimezone(t *testing.T) {
	v := interfaces.VisitorRecord{
		ID:        1,
		Name:      "Bob",
		Purpose:   "Maintenance",
		Timestamp: time.Date(2025, 11, 19, 14, 0, 0, 0, time.UTC),
	}

	est := time.FixedZone("EST", -5*3600)
	got := FormatVisitor(v, est)
	want := "• Bob — 2025-11-19 09:00:00 (Purpose: Maintenance, ID: 1)"
	if got != want {
		t.Errorf("FormatVisitor in EST = %q, want %q", got, want)
	}
}

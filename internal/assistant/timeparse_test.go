package assistant

import (
	"testing"
	"time"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		name     string
		hour     string
		minute   string
		meridiem string
		want     int
	}{
		{"midnight", "12", "", "am", 0},
		{"noon", "12", "", "pm", 720},
		{"afternoon with minutes", "1", "30", "pm", 810},
		{"no meridiem", "9", "15", "", 555},
		{"late evening", "11", "", "pm", 1380},
		{"plain hour", "7", "", "", 420},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTimeToMinutes(tt.hour, tt.minute, tt.meridiem); got != tt.want {
				t.Errorf("parseTimeToMinutes(%q, %q, %q) = %d, want %d",
					tt.hour, tt.minute, tt.meridiem, got, tt.want)
			}
		})
	}
}

func TestParseClockWindow(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want MinuteWindow
		ok   bool
	}{
		{"at hour", "visitors at 5pm", MinuteWindow{Start: 1005, End: 1035}, true},
		{"around hour", "anyone around 10am", MinuteWindow{Start: 585, End: 615}, true},
		{"at with minutes", "visitors at 10:30am", MinuteWindow{Start: 615, End: 645}, true},
		{"between", "visitors between 9am and 11am", MinuteWindow{Start: 540, End: 660}, true},
		{"between beats at", "between 9am and 11am or at 5pm", MinuteWindow{Start: 540, End: 660}, true},
		{"between across midnight", "between 10pm and 2am", MinuteWindow{Start: 1320, End: 120}, true},
		{"no clock time", "who came yesterday", MinuteWindow{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseClockWindow(tt.q)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseClockWindow(%q) = %+v, %v; want %+v, %v",
					tt.q, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMinuteWindowContains(t *testing.T) {
	w := MinuteWindow{Start: 540, End: 660}
	for _, m := range []int{540, 600, 660} {
		if !w.Contains(m) {
			t.Errorf("window %+v should contain %d", w, m)
		}
	}
	for _, m := range []int{539, 661} {
		if w.Contains(m) {
			t.Errorf("window %+v should not contain %d", w, m)
		}
	}

	// Backwards range matches nothing when not wrapping
	backwards := MinuteWindow{Start: 1320, End: 120}
	if backwards.Contains(1380) || backwards.Contains(60) {
		t.Errorf("non-wrapping backwards range should be empty")
	}
}

func TestMinuteWindowWrap(t *testing.T) {
	night := MinuteWindow{Start: 1260, End: 300, Wrap: true}

	for _, m := range []int{1260, 1410, 0, 120, 299} {
		if !night.Contains(m) {
			t.Errorf("night window should contain %d", m)
		}
	}
	for _, m := range []int{300, 595, 1259} {
		if night.Contains(m) {
			t.Errorf("night window should not contain %d", m)
		}
	}
}

func TestParsePeriodWindow(t *testing.T) {
	tests := []struct {
		name      string
		q         string
		wantLabel string
		ok        bool
	}{
		{"morning", "visitors in the morning", "morning", true},
		{"evening", "who came in the evening", "evening", true},
		{"later keyword wins", "in the morning or at night", "night", true},
		{"afternoon over morning", "morning and afternoon visitors", "afternoon", true},
		{"no period", "visitors today", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, _, ok := parsePeriodWindow(tt.q)
			if ok != tt.ok || label != tt.wantLabel {
				t.Errorf("parsePeriodWindow(%q) = %q, %v; want %q, %v",
					tt.q, label, ok, tt.wantLabel, tt.ok)
			}
		})
	}
}

func TestParseDateRange(t *testing.T) {
	loc := time.UTC
	// Wednesday
	now := time.Date(2025, 11, 19, 14, 0, 0, 0, loc)

	day := func(d int) time.Time {
		return time.Date(2025, 11, d, 0, 0, 0, 0, loc)
	}
	dayEnd := func(d int) time.Time {
		return time.Date(2025, 11, d, 23, 59, 59, int(999*time.Millisecond), loc)
	}

	tests := []struct {
		name      string
		q         string
		wantLabel string
		wantStart time.Time
		wantEnd   time.Time
		ok        bool
	}{
		{"today", "visitors today", "today", day(19), dayEnd(19), true},
		{"yesterday", "who came yesterday", "yesterday", day(18), dayEnd(18), true},
		{"this week", "logs this week", "this week", day(17), dayEnd(19), true},
		{"last week", "visitors last week", "last week", day(10), dayEnd(16), true},
		{"last n days", "entries from the last 3 days", "last 3 days", day(17), dayEnd(19), true},
		{"no range", "last visitor", "", time.Time{}, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, r, ok := parseDateRange(tt.q, now, loc)
			if ok != tt.ok {
				t.Fatalf("parseDateRange(%q) ok = %v, want %v", tt.q, ok, tt.ok)
			}
			if !ok {
				return
			}
			if label != tt.wantLabel {
				t.Errorf("label = %q, want %q", label, tt.wantLabel)
			}
			if !r.Start.Equal(tt.wantStart) || !r.End.Equal(tt.wantEnd) {
				t.Errorf("range = [%v, %v], want [%v, %v]", r.Start, r.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestDateRangeContains(t *testing.T) {
	loc := time.UTC
	r := DateRange{
		Start: time.Date(2025, 11, 18, 0, 0, 0, 0, loc),
		End:   time.Date(2025, 11, 18, 23, 59, 59, int(999*time.Millisecond), loc),
	}

	if !r.Contains(r.Start) || !r.Contains(r.End) {
		t.Errorf("range ends should be inclusive")
	}
	if r.Contains(r.Start.Add(-time.Millisecond)) || r.Contains(r.End.Add(time.Millisecond)) {
		t.Errorf("instants outside the range should not match")
	}
}

func TestMentionsVisitorLog(t *testing.T) {
	tests := []struct {
		q    string
		want bool
	}{
		{"any visitors this morning", true},
		{"who came at 5pm", true},
		{"show me the logs", true},
		{"entries for alice", true},
		{"what time is it", false},
		{"turn on the lights at 5pm", false},
	}

	for _, tt := range tests {
		if got := mentionsVisitorLog(tt.q); got != tt.want {
			t.Errorf("mentionsVisitorLog(%q) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Clock-time phrases: "at 5pm", "around 10:30", "between 9am and 11am".
var (
	timeAtRe      = regexp.MustCompile(`(?:at|around)\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
	timeBetweenRe = regexp.MustCompile(`between\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s+and\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
	lastDaysRe    = regexp.MustCompile(`last (\d+) days?`)
)

// atWindowMinutes is the tolerance around an "at H" target, inclusive.
const atWindowMinutes = 15

// Trigger words that gate time-of-day, period, date, and purpose parsing.
// Without one of these the question falls through to later rules or the
// generative fallback, so stray time words in unrelated questions do not
// misfire a log lookup.
var logTriggers = []string{
	"visitor",
	"visitors",
	"who came",
	"who all came",
	"who all came home",
	"logs",
	"entries",
}

func mentionsVisitorLog(q string) bool {
	for _, t := range logTriggers {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

// parseTimeToMinutes converts a 12-hour clock reading to minutes since
// midnight. 12am maps to 0 and 12pm to 720.
func parseTimeToMinutes(hourStr, minuteStr, meridiem string) int {
	h, _ := strconv.Atoi(hourStr)
	m := 0
	if minuteStr != "" {
		m, _ = strconv.Atoi(minuteStr)
	}

	switch meridiem {
	case "pm":
		if h != 12 {
			h += 12
		}
	case "am":
		if h == 12 {
			h = 0
		}
	}

	return h*60 + m
}

// MinuteWindow is an inclusive minute-of-day filter. Wrap marks a window that
// crosses midnight, where a minute matches when it is at or after Start or
// strictly before End.
type MinuteWindow struct {
	Start int
	End   int
	Wrap  bool
}

func (w MinuteWindow) Contains(minute int) bool {
	if w.Wrap {
		return minute >= w.Start || minute < w.End
	}
	return minute >= w.Start && minute <= w.End
}

// parseClockWindow extracts an explicit clock-time filter from q. A "between"
// range takes precedence over an "at/around" point. The second return is
// false when q names no clock time.
func parseClockWindow(q string) (MinuteWindow, bool) {
	if m := timeBetweenRe.FindStringSubmatch(q); m != nil {
		start := parseTimeToMinutes(m[1], m[2], m[3])
		end := parseTimeToMinutes(m[4], m[5], m[6])
		// Ranges that cross midnight are not special-cased: start > end
		// matches nothing, same as the original dashboard.
		return MinuteWindow{Start: start, End: end}, true
	}
	if m := timeAtRe.FindStringSubmatch(q); m != nil {
		target := parseTimeToMinutes(m[1], m[2], m[3])
		return MinuteWindow{Start: target - atWindowMinutes, End: target + atWindowMinutes}, true
	}
	return MinuteWindow{}, false
}

// Named day periods in minutes since midnight, inclusive. When a question
// names several periods, the later keyword in this fixed order overwrites the
// earlier one's bounds. The original dashboard behaved this way and cached
// replies must stay identical to it, so the quirk is preserved.
var periodOrder = []struct {
	label  string
	window MinuteWindow
}{
	{"morning", MinuteWindow{Start: 300, End: 720}},
	{"afternoon", MinuteWindow{Start: 720, End: 1020}},
	{"evening", MinuteWindow{Start: 1020, End: 1260}},
	{"night", MinuteWindow{Start: 1260, End: 300, Wrap: true}},
}

// parsePeriodWindow returns the surviving period filter for q, if any.
func parsePeriodWindow(q string) (string, MinuteWindow, bool) {
	var (
		label  string
		window MinuteWindow
		found  bool
	)
	for _, p := range periodOrder {
		if strings.Contains(q, p.label) {
			label, window, found = p.label, p.window, true
		}
	}
	return label, window, found
}

// DateRange is an absolute instant range, both ends inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// parseDateRange resolves calendar keywords ("today", "yesterday", "this
// week", "last week", "last N days") against now in loc. Weeks start on
// Monday; day bounds run from local midnight to 23:59:59.999.
func parseDateRange(q string, now time.Time, loc *time.Location) (string, DateRange, bool) {
	now = now.In(loc)

	switch {
	case strings.Contains(q, "today"):
		return "today", DateRange{Start: startOfDay(now, loc), End: endOfDay(now, loc)}, true

	case strings.Contains(q, "yesterday"):
		y := now.AddDate(0, 0, -1)
		return "yesterday", DateRange{Start: startOfDay(y, loc), End: endOfDay(y, loc)}, true

	case strings.Contains(q, "this week"):
		monday := now.AddDate(0, 0, -daysSinceMonday(now))
		return "this week", DateRange{Start: startOfDay(monday, loc), End: endOfDay(now, loc)}, true

	case strings.Contains(q, "last week"):
		monday := now.AddDate(0, 0, -daysSinceMonday(now)-7)
		sunday := monday.AddDate(0, 0, 6)
		return "last week", DateRange{Start: startOfDay(monday, loc), End: endOfDay(sunday, loc)}, true
	}

	if m := lastDaysRe.FindStringSubmatch(q); m != nil {
		n, _ := strconv.Atoi(m[1])
		start := now.AddDate(0, 0, -(n - 1))
		label := fmt.Sprintf("last %d days", n)
		return label, DateRange{Start: startOfDay(start, loc), End: endOfDay(now, loc)}, true
	}

	return "", DateRange{}, false
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func endOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
}

func daysSinceMonday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func minuteOfDay(t time.Time, loc *time.Location) int {
	t = t.In(loc)
	return t.Hour()*60 + t.Minute()
}

package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Fixed reply templates. The wording is part of the contract with the
// dashboard: repeated questions must return byte-identical replies, cached or
// not, so none of these strings may drift.
const (
	replyNoBeforeLast     = "I checked the SecureHome logs — there is no visitor recorded before the last one."
	replyBeforeLastPrefix = "I checked the SecureHome logs — the visitor before the last one was:\n\n"
	replyNoVisitors       = "I checked the SecureHome logs — no visitors found."
	replyLastPrefix       = "I checked the SecureHome logs — the most recent visitor was:\n\n"
	replyNoTimeMatch      = "I checked the SecureHome logs — no visitors found for that time."
	replyTimePrefix       = "I checked the SecureHome logs — here are visitors matching that time:\n\n"
	replyListPrefix       = "Here are the visitor logs:\n\n"
	replyNoneRecorded     = "I checked the logs — no visitors recorded."
)

// question carries one request through the rule scan. Match predicates fill
// the extracted parameters for the reply builders.
type question struct {
	raw string // original message, matched by case-insensitive capture patterns
	q   string // lowercased and trimmed
	now time.Time
	loc *time.Location

	id        int64
	name      string
	purpose   string
	window    MinuteWindow
	period    string
	dates     DateRange
	dateLabel string
}

// intentRule pairs a predicate over the question with the handler producing
// its reply. Rules run in slice order and the first match wins, so an input
// claimed by an earlier rule never reaches a later one.
type intentRule struct {
	name  string
	match func(req *question) bool
	reply func(ctx context.Context, e *Engine, req *question) (string, error)
}

// intentRules is the dispatch order. Changing the order changes which rule
// answers ambiguous questions; engine_test pins it.
var intentRules = []intentRule{
	{name: "visitor-before-last", match: matchBeforeLast, reply: replyBeforeLast},
	{name: "last-visitor", match: matchLastVisitor, reply: replyLastVisitor},
	{name: "visitor-by-id", match: matchByID, reply: replyByID},
	{name: "visitor-by-name", match: matchByName, reply: replyByName},
	{name: "visitor-by-purpose", match: matchByPurpose, reply: replyByPurpose},
	{name: "clock-time", match: matchClockTime, reply: replyClockTime},
	{name: "day-period", match: matchDayPeriod, reply: replyDayPeriod},
	{name: "date-range", match: matchDateRange, reply: replyDateRange},
	{name: "list-all", match: matchListAll, reply: replyListAll},
}

// ---- rule 1: visitor before last ----

var beforeLastPhrases = []string{
	"visitor before last",
	"before the last visitor",
	"before last visitor",
}

func matchBeforeLast(req *question) bool {
	return containsAny(req.q, beforeLastPhrases)
}

func replyBeforeLast(ctx context.Context, e *Engine, req *question) (string, error) {
	rows, err := e.source.GetAllVisitors(ctx)
	if err != nil {
		return "", fmt.Errorf("visitor store: %w", err)
	}
	if len(rows) < 2 {
		return replyNoBeforeLast, nil
	}
	return replyBeforeLastPrefix + FormatVisitor(rows[1], e.loc), nil
}

// ---- rule 2: last visitor ----

var lastVisitorPhrases = []string{
	"last visitor",
	"who entered last",
	"who came last",
	"who came home last",
	"recent visitor",
	"latest visitor",
	"last person",
	"last entry",
	"recent entry",
}

func matchLastVisitor(req *question) bool {
	return containsAny(req.q, lastVisitorPhrases)
}

func replyLastVisitor(ctx context.Context, e *Engine, req *question) (string, error) {
	row, err := e.source.GetLastVisitor(ctx)
	if err != nil {
		return "", fmt.Errorf("visitor store: %w", err)
	}
	if row == nil {
		return replyNoVisitors, nil
	}
	return replyLastPrefix + FormatVisitor(*row, e.loc), nil
}

// ---- rule 3: lookup by id ----

var idRe = regexp.MustCompile(`\bid[: ]?(\d+)\b`)

func matchByID(req *question) bool {
	m := idRe.FindStringSubmatch(req.q)
	if m == nil {
		return false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return false
	}
	req.id = id
	return true
}

func replyByID(ctx context.Context, e *Engine, req *question) (string, error) {
	rows, err := e.source.GetAllVisitors(ctx)
	if err != nil {
		return "", fmt.Errorf("visitor store: %w", err)
	}
	for _, v := range rows {
		if v.ID == req.id {
			return fmt.Sprintf("I checked the SecureHome logs — here are the details for visitor ID %d:\n\n%s",
				req.id, FormatVisitor(v, e.loc)), nil
		}
	}
	return fmt.Sprintf("I checked the SecureHome logs — no visitor found with ID %d.", req.id), nil
}

// ---- rule 4: lookup by name ----

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)visits? by ([a-z ]+)`),
	regexp.MustCompile(`(?i)logs? for ([a-z ]+)`),
	regexp.MustCompile(`(?i)entries for ([a-z ]+)`),
	regexp.MustCompile(`(?i)when did ([a-z ]+) (?:visit|come)`),
	regexp.MustCompile(`(?i)did ([a-z ]+) (?:visit|come)`),
	regexp.MustCompile(`(?i)show all visits (?:of|by) ([a-z ]+)`),
}

func matchByName(req *question) bool {
	for _, re := range namePatterns {
		if m := re.FindStringSubmatch(req.raw); m != nil {
			req.name = strings.TrimSpace(m[1])
			return req.name != ""
		}
	}
	return false
}

func replyByName(ctx context.Context, e *Engine, req *question) (string, error) {
	rows, err := e.source.GetAllVisitors(ctx)
	if err != nil {
		return "", fmt.Errorf("visitor store: %w", err)
	}

	needle := strings.ToLower(req.name)
	var lines []string
	for _, v := range rows {
		if strings.Contains(strings.ToLower(v.Name), needle) {
			lines = append(lines, FormatVisitor(v, e.loc))
		}
	}

	if len(lines) == 0 {
		return fmt.Sprintf("I checked the SecureHome logs — no visits found for %q.", req.name), nil
	}
	return fmt.Sprintf("I checked the SecureHome logs — here are the visits matching %q:\n\n%s",
		req.name, strings.Join(lines, "\n")), nil
}

// ---- rule 5: lookup by purpose (trigger-gated) ----

var purposeRe = regexp.MustCompile(`(?i)(?:purpose (?:was|of)|for) ([a-z ]+)`)

func matchByPurpose(req *question) bool {
	if !mentionsVisitorLog(req.q) {
		return false
	}
	m := purposeRe.FindStringSubmatch(req.raw)
	if m == nil {
		return false
	}
	req.purpose = strings.TrimSpace(m[1])
	return req.purpose != ""
}

func replyByPurpose(ctx context.Context, e *Engine, req *question) (string, error) {
	rows, err := e.source.GetAllVisitors(ctx)
	if err != nil {
		return "", fmt.Errorf("visitor store: %w", err)
	}

	needle := strings.ToLower(req.purpose)
	var lines []string
	for _, v := range rows {
		if strings.Contains(strings.ToLower(v.Purpose), needle) {
			lines = append(lines, FormatVisitor(v, e.loc))
		}
	}

	if len(lines) == 0 {
		return fmt.Sprintf("I checked the SecureHome logs — no visitors found with purpose %q.", req.purpose), nil
	}
	return fmt.Sprintf("I checked the SecureHome logs — here are visitors whose purpose matches %q:\n\n%s",
		req.purpose, strings.Join(lines, "\n")), nil
}

// ---- rule 6: explicit clock time (trigger-gated) ----

func matchClockTime(req *question) bool {
	if !mentionsVisitorLog(req.q) {
		return false
	}
	window, ok := parseClockWindow(req.q)
	if !ok {
		return false
	}
	req.window = window
	return true
}

func replyClockTime(ctx context.Context, e *Engine, req *question) (string, error) {
	rows, err := e.source.GetAllVisitors(ctx)
	if err != nil {
		return "", fmt.Errorf("visitor store: %w", err)
	}

	var lines []string
	for _, v := range rows {
		if req.window.Contains(minuteOfDay(v.Timestamp, e.loc)) {
			lines = append(lines, FormatVisitor(v, e.loc))
		}
	}

	if len(lines) == 0 {
		return replyNoTimeMatch, nil
	}
	return replyTimePrefix + strings.Join(lines, "\n"), nil
}

// ---- rule 7: named day period (trigger-gated) ----

func matchDayPeriod(req *question) bool {
	if !mentionsVisitorLog(req.q) {
		return false
	}
	label, window, ok := parsePeriodWindow(req.q)
	if !ok {
		return false
	}
	req.period = label
	req.window = window
	return true
}

func replyDayPeriod(ctx context.Context, e *Engine, req *question) (string, error) {
	rows, err := e.source.GetAllVisitors(ctx)
	if err != nil {
		return "", fmt.Errorf("visitor store: %w", err)
	}

	var lines []string
	for _, v := range rows {
		if req.window.Contains(minuteOfDay(v.Timestamp, e.loc)) {
			lines = append(lines, FormatVisitor(v, e.loc))
		}
	}

	if len(lines) == 0 {
		return fmt.Sprintf("I checked the SecureHome logs — no visitors came in the %s.", req.period), nil
	}
	return fmt.Sprintf("I checked the SecureHome logs — here are visitors who came in the %s:\n\n%s",
		req.period, strings.Join(lines, "\n")), nil
}

// ---- rule 8: calendar range (trigger-gated) ----

func matchDateRange(req *question) bool {
	if !mentionsVisitorLog(req.q) {
		return false
	}
	label, dates, ok := parseDateRange(req.q, req.now, req.loc)
	if !ok {
		return false
	}
	req.dateLabel = label
	req.dates = dates
	return true
}

func replyDateRange(ctx context.Context, e *Engine, req *question) (string, error) {
	rows, err := e.source.GetAllVisitors(ctx)
	if err != nil {
		return "", fmt.Errorf("visitor store: %w", err)
	}

	var lines []string
	for _, v := range rows {
		if req.dates.Contains(v.Timestamp) {
			lines = append(lines, FormatVisitor(v, e.loc))
		}
	}

	if len(lines) == 0 {
		return fmt.Sprintf("I checked the SecureHome logs — no visitors found for %s.", req.dateLabel), nil
	}
	return fmt.Sprintf("I checked the SecureHome logs — here are visitors from %s:\n\n%s",
		req.dateLabel, strings.Join(lines, "\n")), nil
}

// ---- rule 9: list everything ----

var listAllPhrases = []string{
	"all visitors",
	"visitor logs",
	"show visitors",
	"full logs",
	"entire log",
	"who all came",
	"list visitors",
	"show me all entries",
	"show visitor history",
}

func matchListAll(req *question) bool {
	return containsAny(req.q, listAllPhrases)
}

func replyListAll(ctx context.Context, e *Engine, req *question) (string, error) {
	rows, err := e.source.GetAllVisitors(ctx)
	if err != nil {
		return "", fmt.Errorf("visitor store: %w", err)
	}
	if len(rows) == 0 {
		return replyNoneRecorded, nil
	}

	lines := make([]string, 0, len(rows))
	for _, v := range rows {
		lines = append(lines, FormatVisitor(v, e.loc))
	}
	return replyListPrefix + strings.Join(lines, "\n"), nil
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

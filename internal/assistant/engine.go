package assistant

import (
	"context"
	"fmt"
	"time"

	"securehome/server/internal/interfaces"
	"securehome/server/internal/prompts"
)

// Fixed replies shared with the handler layer.
const (
	// ThrottledReply is returned with a success status; callers must not
	// treat it as a failure.
	ThrottledReply = "⚠ Please wait a moment before sending another question."

	// ErrorReply is the single generic failure reply. The end user is never
	// told whether the store or the generative service failed.
	ErrorReply = "⚠ Something went wrong while processing your request."
)

// Engine answers visitor-log questions. Deterministic rules run first in a
// fixed priority order; anything unmatched goes to the generative fallback.
// All shared mutable state (gate, cache) lives on the struct so callers and
// tests control its lifecycle instead of sharing package globals.
type Engine struct {
	source    interfaces.VisitorSource
	generator interfaces.ReplyGenerator
	cache     *ReplyCache
	gate      *RequestGate
	loc       *time.Location
	clock     func() time.Time
}

// Options tunes an Engine. Zero values select the defaults: 60s cache TTL,
// 1.5s minimum request interval, host-local timezone, wall clock.
type Options struct {
	CacheTTL    time.Duration
	MinInterval time.Duration
	Location    *time.Location
	Clock       func() time.Time
}

func NewEngine(source interfaces.VisitorSource, generator interfaces.ReplyGenerator, opts Options) *Engine {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Engine{
		source:    source,
		generator: generator,
		cache:     NewReplyCache(opts.CacheTTL),
		gate:      NewRequestGate(opts.MinInterval),
		loc:       loc,
		clock:     clock,
	}
}

// Answer resolves one question. A throttled request gets the advisory reply
// and nothing else happens: no cache touch, no store read. Every produced
// reply, including empty-result sentences and the generative fallback's text,
// is cached under the normalized question before returning.
func (e *Engine) Answer(ctx context.Context, message string) (string, error) {
	now := e.clock()

	if !e.gate.Admit(now) {
		return ThrottledReply, nil
	}

	req := &question{
		raw: message,
		q:   NormalizeKey(message),
		now: now,
		loc: e.loc,
	}

	if reply, ok := e.cache.Lookup(req.q, now); ok {
		return reply, nil
	}

	for _, rule := range intentRules {
		if !rule.match(req) {
			continue
		}
		reply, err := rule.reply(ctx, e, req)
		if err != nil {
			return "", fmt.Errorf("rule %s: %w", rule.name, err)
		}
		e.cache.Store(req.q, reply, now)
		return reply, nil
	}

	// No rule claimed the question; hand the verbatim text to the model.
	reply, err := e.generator.GenerateReply(ctx, prompts.AssistantSystem, message)
	if err != nil {
		return "", fmt.Errorf("generative fallback: %w", err)
	}
	e.cache.Store(req.q, reply, now)
	return reply, nil
}

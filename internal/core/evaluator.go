package core

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultScheduleTTL is how long a parsed schedule stays cached
const DefaultScheduleTTL = 10 * time.Minute

// Evaluator answers whether a place is open now from its opening-hours string.
// Parsed schedules are memoized in the cache; a nil cache parses on every call.
type Evaluator struct {
	cache  ScheduleCache
	clock  Clock
	ttl    time.Duration
	texts  StatusTexts
	logger *zap.Logger
}

// NewEvaluator creates a new opening-hours evaluator
func NewEvaluator(
	cache ScheduleCache,
	clock Clock,
	ttl time.Duration,
	texts StatusTexts,
	logger *zap.Logger,
) *Evaluator {
	if clock == nil {
		clock = SystemClock{}
	}
	if ttl <= 0 {
		ttl = DefaultScheduleTTL
	}
	if texts == nil {
		texts = DefaultStatusTexts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{
		cache:  cache,
		clock:  clock,
		ttl:    ttl,
		texts:  texts,
		logger: logger,
	}
}

// Evaluate reports whether the place is open at the clock's current time.
// It never fails: missing or unparsable hours evaluate to StatusUnknown,
// which counts as open.
func (e *Evaluator) Evaluate(raw string) EvaluationResult {
	if strings.TrimSpace(raw) == "" {
		return e.result(StatusUnknown)
	}
	if IsAlwaysOpen(raw) {
		return e.result(StatusOpen)
	}

	now := e.clock.Now()
	schedule, err := e.schedule(raw, now)
	if err != nil {
		e.logger.Debug("Failed to parse opening hours",
			zap.String("hours", raw),
			zap.Error(err))
		return e.result(StatusUnknown)
	}

	if schedule.IsOpenAt(now) {
		return e.result(StatusOpen)
	}
	return e.result(StatusClosed)
}

// Parse parses raw as of the current time, bypassing the cache
func (e *Evaluator) Parse(raw string) (Schedule, error) {
	return ParseSchedule(raw, e.clock.Now())
}

// ClearCache drops every memoized schedule
func (e *Evaluator) ClearCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// CacheStats reports the memoized schedules
func (e *Evaluator) CacheStats() CacheStats {
	if e.cache == nil {
		return CacheStats{Keys: []string{}}
	}
	return e.cache.Stats()
}

func (e *Evaluator) schedule(raw string, now time.Time) (Schedule, error) {
	if e.cache == nil {
		return ParseSchedule(raw, now)
	}
	if schedule, ok := e.cache.Get(raw); ok {
		return schedule, nil
	}

	schedule, err := ParseSchedule(raw, now)
	if err != nil {
		return nil, err
	}
	e.cache.Set(raw, schedule, now.Add(e.ttl))
	return schedule, nil
}

func (e *Evaluator) result(status Status) EvaluationResult {
	text, ok := e.texts[status]
	if !ok {
		text = DefaultStatusTexts[status]
	}
	return EvaluationResult{
		IsOpen:     status != StatusClosed,
		Status:     status,
		StatusText: text,
	}
}

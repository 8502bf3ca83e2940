package metrics

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cecil-the-coder/provider-finder/pkg/types"
)

// ResolutionCollector is the default implementation of types.MetricsCollector.
// It keeps thread-safe aggregate counters plus per-strategy hit/miss counts.
type ResolutionCollector struct {
	mu sync.RWMutex

	totalAttempts    atomic.Int64
	totalFailures    atomic.Int64
	successfulFinds  atomic.Int64
	strategyCounters map[string]*strategyCounters
	lastUpdated      time.Time
	firstAttemptTime time.Time
}

// strategyCounters holds per-strategy aggregated counts
type strategyCounters struct {
	hits   atomic.Int64
	misses atomic.Int64
}

// NewResolutionCollector creates an empty collector.
func NewResolutionCollector() *ResolutionCollector {
	return &ResolutionCollector{
		strategyCounters: make(map[string]*strategyCounters),
	}
}

// RecordEvent implements types.MetricsCollector.
func (c *ResolutionCollector) RecordEvent(_ context.Context, event types.ResolutionEvent) error {
	switch event.Type {
	case types.ResolutionEventAttempt:
		c.totalAttempts.Add(1)
		c.mu.Lock()
		if c.firstAttemptTime.IsZero() {
			c.firstAttemptTime = event.Timestamp
		}
		c.mu.Unlock()
	case types.ResolutionEventHit:
		c.successfulFinds.Add(1)
		c.counters(event.Strategy).hits.Add(1)
	case types.ResolutionEventMiss:
		c.counters(event.Strategy).misses.Add(1)
	case types.ResolutionEventFailure:
		c.totalFailures.Add(1)
	}

	c.mu.Lock()
	c.lastUpdated = time.Now()
	c.mu.Unlock()
	return nil
}

// counters returns the counter bucket for a strategy, creating it on demand.
func (c *ResolutionCollector) counters(strategy string) *strategyCounters {
	c.mu.RLock()
	sc, ok := c.strategyCounters[strategy]
	c.mu.RUnlock()
	if ok {
		return sc
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if sc, ok = c.strategyCounters[strategy]; ok {
		return sc
	}
	sc = &strategyCounters{}
	c.strategyCounters[strategy] = sc
	return sc
}

// StrategySnapshot is a point-in-time view of one strategy's counters.
type StrategySnapshot struct {
	Strategy string
	Hits     int64
	Misses   int64
}

// Snapshot is a point-in-time view of the collector.
type Snapshot struct {
	TotalAttempts    int64
	SuccessfulFinds  int64
	TotalFailures    int64
	Strategies       map[string]StrategySnapshot
	FirstAttemptTime time.Time
	LastUpdated      time.Time
}

// GetSnapshot returns a consistent copy of the current counters.
func (c *ResolutionCollector) GetSnapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	strategies := make(map[string]StrategySnapshot, len(c.strategyCounters))
	for name, sc := range c.strategyCounters {
		strategies[name] = StrategySnapshot{
			Strategy: name,
			Hits:     sc.hits.Load(),
			Misses:   sc.misses.Load(),
		}
	}

	return Snapshot{
		TotalAttempts:    c.totalAttempts.Load(),
		SuccessfulFinds:  c.successfulFinds.Load(),
		TotalFailures:    c.totalFailures.Load(),
		Strategies:       strategies,
		FirstAttemptTime: c.firstAttemptTime,
		LastUpdated:      c.lastUpdated,
	}
}

package binder

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see package prommetrics).
//
// RecordIteration is called concurrently from every search worker.
type MetricsCollector interface {
	// RecordIteration is called after each search iteration of a worker.
	// score is the internal objective of the iteration's partition, moves the
	// number of sweetening reassignments, duration the iteration's time.
	RecordIteration(worker int, score float64, moves int, duration time.Duration)

	// RecordRun is called once after each run, err is nil if successful.
	RecordRun(res *Result, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIteration(int, float64, int, time.Duration) {}
func (NoopMetricsCollector) RecordRun(*Result, time.Duration, error)          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
	SweeteningMoves     atomic.Int64
	RunCount            atomic.Int64
	RunErrors           atomic.Int64
	RunTotalNanos       atomic.Int64
	TimeLimitReached    atomic.Int64
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(_ int, _ float64, moves int, duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
	b.SweeteningMoves.Add(int64(moves))
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(res *Result, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
	if res != nil && res.TimeLimitReached {
		b.TimeLimitReached.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IterationCount:    b.IterationCount.Load(),
		IterationAvgNanos: avg(b.IterationTotalNanos.Load(), b.IterationCount.Load()),
		SweeteningMoves:   b.SweeteningMoves.Load(),
		RunCount:          b.RunCount.Load(),
		RunErrors:         b.RunErrors.Load(),
		RunAvgNanos:       avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
		TimeLimitReached:  b.TimeLimitReached.Load(),
	}
}

// Reset resets all metrics to zero.
func (b *BasicMetricsCollector) Reset() {
	b.IterationCount.Store(0)
	b.IterationTotalNanos.Store(0)
	b.SweeteningMoves.Store(0)
	b.RunCount.Store(0)
	b.RunErrors.Store(0)
	b.RunTotalNanos.Store(0)
	b.TimeLimitReached.Store(0)
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector metrics.
type BasicMetricsStats struct {
	IterationCount    int64
	IterationAvgNanos int64
	SweeteningMoves   int64
	RunCount          int64
	RunErrors         int64
	RunAvgNanos       int64
	TimeLimitReached  int64
}

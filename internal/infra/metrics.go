package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	quotesComputed atomic.Uint64
	quotesRejected atomic.Uint64 // "no quote" results
	swapsApplied   atomic.Uint64
	feedFetches    atomic.Uint64
	feedErrors     atomic.Uint64
	storeErrors    atomic.Uint64

	// Gauges
	activeConnections atomic.Int32
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordQuote records a quote computation result.
func (m *Metrics) RecordQuote(ok bool) {
	if ok {
		m.quotesComputed.Add(1)
	} else {
		m.quotesRejected.Add(1)
	}
}

// RecordSwapApplied records a persisted swap.
func (m *Metrics) RecordSwapApplied() {
	m.swapsApplied.Add(1)
}

// RecordFeedFetch records a successful price feed fetch.
func (m *Metrics) RecordFeedFetch() {
	m.feedFetches.Add(1)
}

// RecordFeedError records a failed price feed fetch.
func (m *Metrics) RecordFeedError() {
	m.feedErrors.Add(1)
}

// RecordStoreError records a persistent-store failure.
func (m *Metrics) RecordStoreError() {
	m.storeErrors.Add(1)
}

// IncrementConnections increments active connections by 1.
func (m *Metrics) IncrementConnections() {
	m.activeConnections.Add(1)
}

// DecrementConnections decrements active connections by 1.
func (m *Metrics) DecrementConnections() {
	m.activeConnections.Add(-1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	QuotesComputed    uint64    `json:"quotes_computed"`
	QuotesRejected    uint64    `json:"quotes_rejected"`
	SwapsApplied      uint64    `json:"swaps_applied"`
	FeedFetches       uint64    `json:"feed_fetches"`
	FeedErrors        uint64    `json:"feed_errors"`
	StoreErrors       uint64    `json:"store_errors"`
	ActiveConnections int32     `json:"active_connections"`
	Timestamp         time.Time `json:"timestamp"`
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		QuotesComputed:    m.quotesComputed.Load(),
		QuotesRejected:    m.quotesRejected.Load(),
		SwapsApplied:      m.swapsApplied.Load(),
		FeedFetches:       m.feedFetches.Load(),
		FeedErrors:        m.feedErrors.Load(),
		StoreErrors:       m.storeErrors.Load(),
		ActiveConnections: m.activeConnections.Load(),
		Timestamp:         time.Now(),
	}
}

package input

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/keychord/internal/input/keymap"
)

// Metrics tracks keystroke processing for a session.
type Metrics struct {
	// Counters
	keysTotal        atomic.Uint64
	waiting          atomic.Uint64
	failed           atomic.Uint64
	success          atomic.Uint64
	commandErrors    atomic.Uint64
	modeChanges      atomic.Uint64
	hookConsumptions atomic.Uint64

	// Latency ring buffer
	mu                sync.RWMutex
	keyLatencies      []time.Duration
	maxLatencySamples int
	latencyIdx        int

	// Peak latency (all time)
	peakKeyLatency atomic.Int64

	startTime time.Time

	enabled atomic.Bool
}

const defaultLatencySamples = 1000

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		keyLatencies:      make([]time.Duration, defaultLatencySamples),
		maxLatencySamples: defaultLatencySamples,
		startTime:         time.Now(),
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordKey records one processed keystroke, its match outcome and how
// long it took, command included.
func (m *Metrics) RecordKey(kind keymap.MatchKind, latency time.Duration) {
	if !m.enabled.Load() {
		return
	}

	m.keysTotal.Add(1)
	switch kind {
	case keymap.MatchWaiting:
		m.waiting.Add(1)
	case keymap.MatchFailed:
		m.failed.Add(1)
	case keymap.MatchSuccess:
		m.success.Add(1)
	}

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakKeyLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakKeyLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	m.mu.Lock()
	m.keyLatencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()
}

// RecordCommandError records a matched command that returned an error.
func (m *Metrics) RecordCommandError() {
	if !m.enabled.Load() {
		return
	}
	m.commandErrors.Add(1)
}

// RecordModeChange records a switch of the active mode.
func (m *Metrics) RecordModeChange() {
	if !m.enabled.Load() {
		return
	}
	m.modeChanges.Add(1)
}

// RecordHookConsumption records a keystroke swallowed by a hook.
func (m *Metrics) RecordHookConsumption() {
	if !m.enabled.Load() {
		return
	}
	m.hookConsumptions.Add(1)
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	// Counters
	KeysTotal        uint64
	Waiting          uint64
	Failed           uint64
	Success          uint64
	CommandErrors    uint64
	ModeChanges      uint64
	HookConsumptions uint64

	// Latency stats
	AvgKeyLatency  time.Duration
	MaxKeyLatency  time.Duration
	P99KeyLatency  time.Duration
	PeakKeyLatency time.Duration

	KeysPerSecond float64

	Uptime time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	latencies := make([]time.Duration, len(m.keyLatencies))
	copy(latencies, m.keyLatencies)
	uptime := time.Since(m.startTime)
	m.mu.RUnlock()

	keys := m.keysTotal.Load()
	snap := MetricsSnapshot{
		KeysTotal:        keys,
		Waiting:          m.waiting.Load(),
		Failed:           m.failed.Load(),
		Success:          m.success.Load(),
		CommandErrors:    m.commandErrors.Load(),
		ModeChanges:      m.modeChanges.Load(),
		HookConsumptions: m.hookConsumptions.Load(),
		PeakKeyLatency:   time.Duration(m.peakKeyLatency.Load()),
		Uptime:           uptime,
	}
	if uptime > 0 {
		snap.KeysPerSecond = float64(keys) / uptime.Seconds()
	}
	snap.AvgKeyLatency, snap.MaxKeyLatency, snap.P99KeyLatency = calculateLatencyStats(latencies)
	return snap
}

// calculateLatencyStats computes average, max, and p99 from a slice of
// latencies. Zero entries are unused ring slots.
func calculateLatencyStats(latencies []time.Duration) (avg, maxLat, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return 0, 0, 0
	}

	var sum time.Duration
	for _, l := range valid {
		sum += l
	}
	avg = sum / time.Duration(len(valid))

	sort.Slice(valid, func(i, j int) bool { return valid[i] < valid[j] })
	maxLat = valid[len(valid)-1]

	idx := min(int(float64(len(valid))*0.99), len(valid)-1)
	p99 = valid[idx]
	return avg, maxLat, p99
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.keysTotal.Store(0)
	m.waiting.Store(0)
	m.failed.Store(0)
	m.success.Store(0)
	m.commandErrors.Store(0)
	m.modeChanges.Store(0)
	m.hookConsumptions.Store(0)
	m.peakKeyLatency.Store(0)

	m.mu.Lock()
	m.keyLatencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}

// KeysTotal returns the number of keystrokes processed.
func (m *Metrics) KeysTotal() uint64 {
	return m.keysTotal.Load()
}

// CommandErrors returns the number of commands that failed.
func (m *Metrics) CommandErrors() uint64 {
	return m.commandErrors.Load()
}

// HealthStatus represents the current health of keystroke processing.
type HealthStatus struct {
	Healthy          bool
	CommandErrors    uint64
	PeakLatency      time.Duration
	LatencyThreshold time.Duration
	Message          string
}

// HealthCheck reports unhealthy once a keystroke took longer than
// latencyThreshold. Command errors are reported but do not fail the check.
func (m *Metrics) HealthCheck(latencyThreshold time.Duration) HealthStatus {
	status := HealthStatus{
		Healthy:          true,
		CommandErrors:    m.commandErrors.Load(),
		PeakLatency:      time.Duration(m.peakKeyLatency.Load()),
		LatencyThreshold: latencyThreshold,
		Message:          "healthy",
	}
	if status.PeakLatency > latencyThreshold {
		status.Healthy = false
		status.Message = "latency threshold exceeded"
	}
	return status
}

// Timer measures the processing time of one keystroke.
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// StartKeyTimer starts a timer for one keystroke.
func (m *Metrics) StartKeyTimer() *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: m,
	}
}

// Stop records the keystroke with its outcome and returns the elapsed time.
func (t *Timer) Stop(kind keymap.MatchKind) time.Duration {
	elapsed := time.Since(t.start)
	t.metrics.RecordKey(kind, elapsed)
	return elapsed
}

package bench

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Metrics aggregates latencies and outcomes across a run.
type Metrics struct {
	mu sync.Mutex

	total   atomic.Int64
	success atomic.Int64
	failed  atomic.Int64

	// Latencies in microseconds, 1us to 60s, 3 significant digits.
	histogram *hdrhistogram.Histogram

	startTime time.Time
	endTime   time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		histogram: hdrhistogram.New(1, 60_000_000, 3),
	}
}

func (m *Metrics) Start() {
	m.startTime = time.Now()
}

func (m *Metrics) Stop() {
	m.endTime = time.Now()
}

// Record notes one finished request. Transport errors and 5xx count as
// failures; any other response counts as success.
func (m *Metrics) Record(duration time.Duration, failed bool) {
	m.total.Add(1)
	if failed {
		m.failed.Add(1)
	} else {
		m.success.Add(1)
	}

	latencyUs := duration.Microseconds()
	if latencyUs < 1 {
		latencyUs = 1
	}
	if latencyUs > 60_000_000 {
		latencyUs = 60_000_000
	}

	m.mu.Lock()
	_ = m.histogram.RecordValue(latencyUs)
	m.mu.Unlock()
}

// Summary is the final shape handed to the reporter.
type Summary struct {
	Duration time.Duration
	Total    int64
	Success  int64
	Failed   int64

	RPS       float64
	ErrorRate float64

	P50    time.Duration
	P95    time.Duration
	P99    time.Duration
	Min    time.Duration
	Max    time.Duration
	Mean   time.Duration
	StdDev time.Duration
}

func (m *Metrics) Summary() *Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	duration := m.endTime.Sub(m.startTime)
	if m.endTime.IsZero() {
		duration = time.Since(m.startTime)
	}

	total := m.total.Load()
	failed := m.failed.Load()

	rps := float64(0)
	if duration.Seconds() > 0 {
		rps = float64(total) / duration.Seconds()
	}

	errorRate := float64(0)
	if total > 0 {
		errorRate = float64(failed) / float64(total)
	}

	return &Summary{
		Duration:  duration,
		Total:     total,
		Success:   m.success.Load(),
		Failed:    failed,
		RPS:       rps,
		ErrorRate: errorRate,
		P50:       time.Duration(m.histogram.ValueAtQuantile(50)) * time.Microsecond,
		P95:       time.Duration(m.histogram.ValueAtQuantile(95)) * time.Microsecond,
		P99:       time.Duration(m.histogram.ValueAtQuantile(99)) * time.Microsecond,
		Min:       time.Duration(m.histogram.Min()) * time.Microsecond,
		Max:       time.Duration(m.histogram.Max()) * time.Microsecond,
		Mean:      time.Duration(m.histogram.Mean()) * time.Microsecond,
		StdDev:    time.Duration(m.histogram.StdDev()) * time.Microsecond,
	}
}

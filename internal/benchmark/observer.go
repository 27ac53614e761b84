package benchmark

import (
	"sync"

	"sortbench/internal/telemetry"
)

// MetricsObserver feeds cell outcomes into Prometheus collectors.
type MetricsObserver struct {
	metrics *telemetry.Metrics
}

func NewMetricsObserver(m *telemetry.Metrics) *MetricsObserver {
	return &MetricsObserver{metrics: m}
}

func (o *MetricsObserver) TierStarted(size, cells int) {
	o.metrics.TiersInProgress.Inc()
}

func (o *MetricsObserver) CellFinished(r RunResult) {
	ms, measured := r.Time.Ms()
	o.metrics.ObserveCell(r.Algorithm, string(r.Status), r.Size, ms, measured && r.Status == StatusCompleted)
}

func (o *MetricsObserver) TierFinished(t SizeTierResults) {
	o.metrics.TiersInProgress.Dec()
}

// ProgressFunc adapts a callback receiving (done, total) cell counts for one
// run into an Observer. total only grows if more cells arrive than expected.
type ProgressFunc func(r RunResult, done, total int)

type progressObserver struct {
	mu          sync.Mutex
	fn          ProgressFunc
	done, total int
}

// NewProgressObserver counts cells across the whole run. fn is called with
// the observer's lock held, so it never runs concurrently with itself.
func NewProgressObserver(totalCells int, fn ProgressFunc) Observer {
	return &progressObserver{fn: fn, total: totalCells}
}

func (p *progressObserver) TierStarted(size, cells int) {}

func (p *progressObserver) CellFinished(r RunResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if p.done > p.total {
		p.total = p.done
	}
	p.fn(r, p.done, p.total)
}

func (p *progressObserver) TierFinished(t SizeTierResults) {}

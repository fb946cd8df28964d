package infrastructure

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RuntimeMetrics records Go runtime resource usage of a report run
type RuntimeMetrics struct {
	goroutines metric.Int64Gauge
	heapAlloc  metric.Int64Gauge
	totalAlloc metric.Int64Gauge
	system     metric.Int64Gauge
	gcCount    metric.Int64Gauge
	gcPause    metric.Float64Histogram
}

// RuntimeStats is a snapshot of runtime memory statistics
type RuntimeStats struct {
	Goroutines  int64
	HeapAlloc   int64
	TotalAlloc  int64
	System      int64
	GCCount     uint32
	LastGCPause time.Duration
	Timestamp   time.Time
}

// NewRuntimeMetrics creates the runtime gauges on meter
func NewRuntimeMetrics(meter metric.Meter) (*RuntimeMetrics, error) {
	goroutines, err := meter.Int64Gauge(
		"ipl_report_runtime_goroutines",
		metric.WithDescription("Number of active goroutines"),
	)
	if err != nil {
		return nil, err
	}

	heapAlloc, err := meter.Int64Gauge(
		"ipl_report_runtime_heap_alloc_bytes",
		metric.WithDescription("Bytes of allocated heap objects"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	totalAlloc, err := meter.Int64Gauge(
		"ipl_report_runtime_total_alloc_bytes",
		metric.WithDescription("Cumulative bytes allocated for heap objects"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	system, err := meter.Int64Gauge(
		"ipl_report_runtime_sys_bytes",
		metric.WithDescription("Memory obtained from the OS in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	gcCount, err := meter.Int64Gauge(
		"ipl_report_runtime_gc_count",
		metric.WithDescription("Completed garbage collection cycles"),
	)
	if err != nil {
		return nil, err
	}

	gcPause, err := meter.Float64Histogram(
		"ipl_report_runtime_gc_pause",
		metric.WithDescription("Most recent garbage collection pause"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RuntimeMetrics{
		goroutines: goroutines,
		heapAlloc:  heapAlloc,
		totalAlloc: totalAlloc,
		system:     system,
		gcCount:    gcCount,
		gcPause:    gcPause,
	}, nil
}

// Collect reads the runtime memory statistics and records them
func (m *RuntimeMetrics) Collect(ctx context.Context) RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	stats := RuntimeStats{
		Goroutines:  int64(runtime.NumGoroutine()),
		HeapAlloc:   int64(mem.HeapAlloc),
		TotalAlloc:  int64(mem.TotalAlloc),
		System:      int64(mem.Sys),
		GCCount:     mem.NumGC,
		LastGCPause: time.Duration(mem.PauseNs[(mem.NumGC+255)%256]),
		Timestamp:   time.Now(),
	}
	if m == nil {
		return stats
	}

	m.goroutines.Record(ctx, stats.Goroutines)
	m.heapAlloc.Record(ctx, stats.HeapAlloc)
	m.totalAlloc.Record(ctx, stats.TotalAlloc)
	m.system.Record(ctx, stats.System)
	m.gcCount.Record(ctx, int64(stats.GCCount))
	if stats.LastGCPause > 0 {
		m.gcPause.Record(ctx, stats.LastGCPause.Seconds())
	}
	return stats
}

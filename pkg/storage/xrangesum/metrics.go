package xrangesum

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// 指标名称常量
const (
	metricNameHits          = "xrangesum.hits.total"
	metricNameMisses        = "xrangesum.misses.total"
	metricNameEvictions     = "xrangesum.evictions.total"
	metricNameInvalidations = "xrangesum.invalidations.total"
	metricNameScanned       = "xrangesum.invalidation.scanned"
)

// metrics 缓存指标收集器，nil 接收者上的方法均为空操作。
type metrics struct {
	hits          metric.Int64Counter
	misses        metric.Int64Counter
	evictions     metric.Int64Counter
	invalidations metric.Int64Counter
	scanned       metric.Int64Histogram
}

// newMetrics 创建指标收集器。
// meterProvider 为 nil 时返回 nil（不收集指标）。
func newMetrics(meterProvider metric.MeterProvider) (*metrics, error) {
	if meterProvider == nil {
		return nil, nil
	}

	meter := meterProvider.Meter("xrangesum",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	m := &metrics{}
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
		unit string
	}{
		{&m.hits, metricNameHits, "区间查询命中次数", "{query}"},
		{&m.misses, metricNameMisses, "区间查询未命中次数", "{query}"},
		{&m.evictions, metricNameEvictions, "容量淘汰的区间数", "{range}"},
		{&m.invalidations, metricNameInvalidations, "因单点更新失效的区间数", "{range}"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name,
			metric.WithDescription(c.desc),
			metric.WithUnit(c.unit),
		)
		if err != nil {
			return nil, fmt.Errorf("xrangesum: create counter %s: %w", c.name, err)
		}
		*c.dst = counter
	}

	scanned, err := meter.Int64Histogram(metricNameScanned,
		metric.WithDescription("每次更新扫描的缓存键数"),
		metric.WithUnit("{key}"),
		metric.WithExplicitBucketBoundaries(0, 1, 4, 16, 64, 256, 1024, 4096),
	)
	if err != nil {
		return nil, fmt.Errorf("xrangesum: create histogram %s: %w", metricNameScanned, err)
	}
	m.scanned = scanned

	return m, nil
}

func (m *metrics) recordQuery(ctx context.Context, hit, evicted bool) {
	if m == nil {
		return
	}
	if hit {
		m.hits.Add(ctx, 1)
		return
	}
	m.misses.Add(ctx, 1)
	if evicted {
		m.evictions.Add(ctx, 1)
	}
}

func (m *metrics) recordUpdate(ctx context.Context, removed, scanned int) {
	if m == nil {
		return
	}
	if removed > 0 {
		m.invalidations.Add(ctx, int64(removed))
	}
	m.scanned.Record(ctx, int64(scanned))
}

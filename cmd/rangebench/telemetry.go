package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/omeyang/rangekit/pkg/observability/xlog"
	"github.com/omeyang/rangekit/pkg/observability/xmetrics"
)

// telemetry 命令运行期间的日志与指标
type telemetry struct {
	logger   xlog.LoggerWithLevel
	observer xmetrics.Observer
	provider metric.MeterProvider

	reader  *sdkmetric.ManualReader
	sdk     *sdkmetric.MeterProvider
	cleanup func() error
}

// newTelemetry 按配置构建日志器；启用指标时使用 ManualReader 在结束时一次性采集
func newTelemetry(cfg *Config, stderr io.Writer) (*telemetry, error) {
	logger, cleanup, err := xlog.New().
		SetOutput(stderr).
		SetLevel(cfg.Log.Level).
		SetFormat(cfg.Log.Format).
		SetRotation(cfg.Log.File, xlog.WithMaxSize(cfg.Log.MaxSizeMB)).
		Build()
	if err != nil {
		return nil, &usageError{err: err}
	}

	t := &telemetry{
		logger:   logger,
		provider: noop.NewMeterProvider(),
		cleanup:  cleanup,
	}
	if cfg.Metrics {
		t.reader = sdkmetric.NewManualReader()
		t.sdk = sdkmetric.NewMeterProvider(sdkmetric.WithReader(t.reader))
		t.provider = t.sdk
	}

	obs, err := xmetrics.NewOTelObserver(
		xmetrics.WithInstrumentationName("rangebench"),
		xmetrics.WithMeterProvider(t.provider),
	)
	if err != nil {
		_ = cleanup()
		return nil, err
	}
	t.observer = obs
	return t, nil
}

// meterProvider 未启用指标时返回 nil，使库内部跳过指标记录
func (t *telemetry) meterProvider() metric.MeterProvider {
	if t.sdk == nil {
		return nil
	}
	return t.sdk
}

// report 输出所有计数器和直方图的汇总
func (t *telemetry) report(ctx context.Context, w io.Writer) error {
	if t.reader == nil {
		return nil
	}
	var rm metricdata.ResourceMetrics
	if err := t.reader.Collect(ctx, &rm); err != nil {
		return fmt.Errorf("collect metrics: %w", err)
	}

	var lines []string
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				var total int64
				for _, dp := range data.DataPoints {
					total += dp.Value
				}
				lines = append(lines, fmt.Sprintf("%-36s %d", m.Name, total))
			case metricdata.Histogram[int64]:
				var count uint64
				var sum int64
				for _, dp := range data.DataPoints {
					count += dp.Count
					sum += dp.Sum
				}
				lines = append(lines, fmt.Sprintf("%-36s count=%d sum=%d", m.Name, count, sum))
			case metricdata.Histogram[float64]:
				var count uint64
				var sum float64
				for _, dp := range data.DataPoints {
					count += dp.Count
					sum += dp.Sum
				}
				lines = append(lines, fmt.Sprintf("%-36s count=%d sum=%.6f", m.Name, count, sum))
			}
		}
	}
	slices.Sort(lines)

	fmt.Fprintln(w, "metrics:")
	for _, l := range lines {
		fmt.Fprintf(w, "  %s\n", l)
	}
	return nil
}

// close 释放日志文件与指标 SDK
func (t *telemetry) close(ctx context.Context) error {
	var err error
	if t.sdk != nil {
		err = t.sdk.Shutdown(ctx)
	}
	if cerr := t.cleanup(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

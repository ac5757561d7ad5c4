package xrangesum

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/rangekit/pkg/observability/xlog"
)

// Option 定义 Cache 可选配置
type Option func(*options)

type options struct {
	logger        xlog.Logger
	meterProvider metric.MeterProvider
}

func defaultOptions() *options {
	return &options{
		logger: xlog.Discard(),
	}
}

// WithLogger 设置日志记录器，nil 时保持默认（丢弃日志）
func WithLogger(logger xlog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMeterProvider 设置 OpenTelemetry MeterProvider。
// 未设置时不收集指标。
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

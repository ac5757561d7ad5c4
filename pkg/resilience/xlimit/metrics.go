package xlimit

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// 指标名称常量
const (
	// metricNameRequestsTotal 请求总数计数器
	metricNameRequestsTotal = "xlimit.requests.total"
	// metricNameDeniedTotal 被限流请求计数器
	metricNameDeniedTotal = "xlimit.denied.total"
)

// metrics 限流指标收集器
type metrics struct {
	requestsTotal metric.Int64Counter
	deniedTotal   metric.Int64Counter
}

// newMetrics 创建指标收集器
// 如果 meterProvider 为 nil，返回 nil（不收集指标）
func newMetrics(meterProvider metric.MeterProvider) (*metrics, error) {
	if meterProvider == nil {
		return nil, nil
	}

	meter := meterProvider.Meter("xlimit",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	requestsTotal, err := meter.Int64Counter(
		metricNameRequestsTotal,
		metric.WithDescription("限流请求总数"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	deniedTotal, err := meter.Int64Counter(
		metricNameDeniedTotal,
		metric.WithDescription("被限流拒绝的请求数"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &metrics{
		requestsTotal: requestsTotal,
		deniedTotal:   deniedTotal,
	}, nil
}

// recordAllow 记录一次 Record 的结果
func (m *metrics) recordAllow(ctx context.Context, store string, allowed bool) {
	if m == nil {
		return
	}

	// ctx 被取消时指标仍需记录
	metricsCtx := context.WithoutCancel(ctx)

	attrs := metric.WithAttributes(
		attribute.String("store", store),
		attribute.Bool("allowed", allowed),
	)
	m.requestsTotal.Add(metricsCtx, 1, attrs)
	if !allowed {
		m.deniedTotal.Add(metricsCtx, 1, attrs)
	}
}

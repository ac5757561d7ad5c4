package xmetrics

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultInstrumentationName = "github.com/omeyang/rangekit/xmetrics"
	unknownName                = "unknown"

	metricOperationTotal    = "rangekit.operation.total"
	metricOperationDuration = "rangekit.operation.duration"
)

type otelConfig struct {
	name   string
	tracer trace.TracerProvider
	meter  metric.MeterProvider
}

// Option 配置 NewOTelObserver。
type Option func(*otelConfig)

// WithInstrumentationName 覆盖 tracer/meter 的 instrumentation 名称，空串忽略。
func WithInstrumentationName(name string) Option {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.name = name
		}
	}
}

// WithTracerProvider 指定 TracerProvider，nil 忽略。
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.tracer = provider
		}
	}
}

// WithMeterProvider 指定 MeterProvider，nil 忽略。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.meter = provider
		}
	}
}

// instruments 是所有跨度共享的两个指标。
type instruments struct {
	total    metric.Int64Counter
	duration metric.Float64Histogram
}

func newInstruments(meter metric.Meter) (instruments, error) {
	total, err := meter.Int64Counter(metricOperationTotal,
		metric.WithDescription("operations observed, by component/operation/status"),
		metric.WithUnit("1"))
	if err != nil {
		return instruments{}, fmt.Errorf("%w: %w", ErrCreateCounter, err)
	}
	duration, err := meter.Float64Histogram(metricOperationDuration,
		metric.WithDescription("operation wall time, by component/operation/status"),
		metric.WithUnit("s"))
	if err != nil {
		return instruments{}, fmt.Errorf("%w: %w", ErrCreateHistogram, err)
	}
	return instruments{total: total, duration: duration}, nil
}

// NewOTelObserver 创建基于 OpenTelemetry 的 Observer。
// 未指定 provider 时使用 otel 全局 provider。
func NewOTelObserver(opts ...Option) (Observer, error) {
	cfg := otelConfig{
		name:   defaultInstrumentationName,
		tracer: otel.GetTracerProvider(),
		meter:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(&cfg)
	}

	inst, err := newInstruments(cfg.meter.Meter(cfg.name))
	if err != nil {
		return nil, err
	}
	return &otelObserver{tracer: cfg.tracer.Tracer(cfg.name), inst: inst}, nil
}

type otelObserver struct {
	tracer trace.Tracer
	inst   instruments
}

func (o *otelObserver) Start(ctx context.Context, opts SpanOptions) (context.Context, Span) {
	component := nameOr(opts.Component)
	operation := nameOr(opts.Operation)

	// 指标维度在开始时固定，End 只追加 status
	dims := make([]attribute.KeyValue, 0, 3+len(opts.MetricAttrs))
	dims = append(dims,
		attribute.String("component", component),
		attribute.String("operation", operation),
	)
	dims = append(dims, attrsToOTel(opts.MetricAttrs)...)

	spanAttrs := append(dims[:len(dims):len(dims)], attrsToOTel(opts.Attrs)...)
	ctx, span := o.tracer.Start(orBackground(ctx), component+"."+operation,
		trace.WithSpanKind(spanKind(opts.Kind)),
		trace.WithAttributes(spanAttrs...),
	)

	return ctx, &otelSpan{
		span:  span,
		inst:  o.inst,
		ctx:   ctx,
		dims:  dims,
		start: time.Now(),
	}
}

type otelSpan struct {
	span  trace.Span
	inst  instruments
	ctx   context.Context
	dims  []attribute.KeyValue
	start time.Time
	once  sync.Once
}

// End 结束跨度并记录一次指标；重复调用只生效一次。
func (s *otelSpan) End(result Result) {
	if s == nil {
		return
	}
	s.once.Do(func() {
		status := resolveStatus(result)
		markStatus(s.span, status, result.Err)
		if len(result.Attrs) > 0 {
			s.span.SetAttributes(attrsToOTel(result.Attrs)...)
		}
		s.span.End()

		elapsed := time.Since(s.start).Seconds()
		set := metric.WithAttributes(append(s.dims, attribute.String("status", string(status)))...)
		// 调用方 ctx 已取消时仍要记账；ctx 中的跨度用于关联 exemplar
		mctx := context.WithoutCancel(s.ctx)
		s.inst.total.Add(mctx, 1, set)
		s.inst.duration.Record(mctx, elapsed, set)
	})
}

func markStatus(span trace.Span, status Status, err error) {
	if err != nil {
		span.RecordError(err)
	}
	if status != StatusError {
		span.SetStatus(codes.Ok, "")
		return
	}
	desc := "operation failed"
	if err != nil {
		desc = err.Error()
	}
	span.SetStatus(codes.Error, desc)
}

func resolveStatus(result Result) Status {
	switch {
	case result.Status != "":
		return result.Status
	case result.Err != nil:
		return StatusError
	default:
		return StatusOK
	}
}

func spanKind(kind Kind) trace.SpanKind {
	if kind == KindClient {
		return trace.SpanKindClient
	}
	return trace.SpanKindInternal
}

func nameOr(name string) string {
	if name == "" {
		return unknownName
	}
	return name
}

func attrsToOTel(attrs []Attr) []attribute.KeyValue {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]attribute.KeyValue, 0, len(attrs))
	for _, a := range attrs {
		if a.Key != "" && a.Value != nil {
			out = append(out, toKeyValue(a))
		}
	}
	return out
}

func toKeyValue(a Attr) attribute.KeyValue {
	switch v := a.Value.(type) {
	case string:
		return attribute.String(a.Key, v)
	case bool:
		return attribute.Bool(a.Key, v)
	case int:
		return attribute.Int(a.Key, v)
	case uint64:
		if v > math.MaxInt64 {
			return attribute.String(a.Key, strconv.FormatUint(v, 10))
		}
		return attribute.Int64(a.Key, int64(v))
	case float64:
		return attribute.Float64(a.Key, v)
	case time.Duration:
		return attribute.Float64(a.Key, v.Seconds())
	default:
		return attribute.String(a.Key, fmt.Sprint(v))
	}
}

package xmetrics

import (
	"context"
	"strconv"
)

// Kind 区分跨度是进程内计算还是对外部依赖的调用。
type Kind int

const (
	// KindInternal 表示进程内操作，如一次回放或一次缓存查询。
	KindInternal Kind = iota
	// KindClient 表示对外部存储的调用，如访问 Redis 的限流存储。
	KindClient
)

func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "internal"
	case KindClient:
		return "client"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Status 表示观测结果状态，同时作为指标的 status 维度。
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Attr 是一个键值属性，Value 支持 attrs.go 中构造函数产生的类型。
type Attr struct {
	Key   string
	Value any
}

// SpanOptions 描述一次观测。
//
// Attrs 只写入跨度；MetricAttrs 同时写入跨度和
// rangekit.operation.* 指标，只应放低基数的值（回放路径名、存储类型）。
type SpanOptions struct {
	Component   string
	Operation   string
	Kind        Kind
	Attrs       []Attr
	MetricAttrs []Attr
}

// Result 是跨度结束时的结果。Status 为空时由 Err 推导。
type Result struct {
	Status Status
	Err    error
	Attrs  []Attr
}

// Span 是进行中的一次观测。
type Span interface {
	End(result Result)
}

// Observer 开始观测跨度。bench 和 xlimit 只依赖该接口。
type Observer interface {
	Start(ctx context.Context, opts SpanOptions) (context.Context, Span)
}

// NoopObserver 不产生任何跨度或指标。
type NoopObserver struct{}

// Start 原样返回 ctx（nil 时为 context.Background()）。
func (NoopObserver) Start(ctx context.Context, _ SpanOptions) (context.Context, Span) {
	return orBackground(ctx), NoopSpan{}
}

// NoopSpan 的 End 什么都不做。
type NoopSpan struct{}

func (NoopSpan) End(Result) {}

// Start 是调用方的统一入口：observer 为 nil 时退化为空跨度，
// 并保证返回值 ctx 与 Span 均非 nil。
func Start(ctx context.Context, observer Observer, opts SpanOptions) (context.Context, Span) {
	ctx = orBackground(ctx)
	if observer == nil {
		return ctx, NoopSpan{}
	}
	spanCtx, span := observer.Start(ctx, opts)
	if spanCtx == nil {
		spanCtx = ctx
	}
	if span == nil {
		span = NoopSpan{}
	}
	return spanCtx, span
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

package xlimit

import (
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/rangekit/pkg/observability/xlog"
	"github.com/omeyang/rangekit/pkg/observability/xmetrics"
)

// 默认参数
const (
	// DefaultWindow 默认窗口长度
	DefaultWindow = 10 * time.Second
	// DefaultMaxRequests 默认窗口内最大请求数
	DefaultMaxRequests = 1
)

// Clock 返回当前时间
type Clock func() time.Time

// options 内部配置结构
type options struct {
	window        time.Duration
	maxRequests   int
	clock         Clock
	logger        xlog.Logger
	meterProvider metric.MeterProvider
	observer      xmetrics.Observer
}

// Option 配置选项函数
type Option func(*options)

func defaultOptions() *options {
	return &options{
		window:      DefaultWindow,
		maxRequests: DefaultMaxRequests,
		clock:       time.Now,
		logger:      xlog.Discard(),
	}
}

func (o *options) validate() error {
	if o.window <= 0 {
		return ErrInvalidWindow
	}
	if o.maxRequests <= 0 {
		return ErrInvalidLimit
	}
	return nil
}

// WithWindow 设置窗口长度，默认 10s
func WithWindow(window time.Duration) Option {
	return func(o *options) {
		o.window = window
	}
}

// WithMaxRequests 设置窗口内每个用户允许的最大请求数，默认 1
func WithMaxRequests(n int) Option {
	return func(o *options) {
		o.maxRequests = n
	}
}

// WithClock 设置时钟，nil 时使用 time.Now。
// 用于测试和模拟时间推进。
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger xlog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMeterProvider 设置 OpenTelemetry MeterProvider，未设置时不收集指标
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// WithObserver 为每次存储访问开启一个跨度（xlimit.record、xlimit.count 等），
// 指标带 store 维度。Redis 存储的跨度类型为 KindClient。
func WithObserver(observer xmetrics.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

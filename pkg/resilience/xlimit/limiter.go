package xlimit

import (
	"context"
	"time"

	"github.com/omeyang/rangekit/pkg/observability/xlog"
	"github.com/omeyang/rangekit/pkg/observability/xmetrics"
)

// SlidingWindow 按用户的滑动窗口限流器，并发安全性取决于 Store（内置实现均并发安全）。
type SlidingWindow struct {
	store       Store
	window      time.Duration
	maxRequests int
	clock       Clock
	logger      xlog.Logger
	metrics     *metrics
	observer    xmetrics.Observer
}

// New 创建限流器
func New(store Store, opts ...Option) (*SlidingWindow, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	m, err := newMetrics(o.meterProvider)
	if err != nil {
		return nil, err
	}

	return &SlidingWindow{
		store:       store,
		window:      o.window,
		maxRequests: o.maxRequests,
		clock:       o.clock,
		logger:      o.logger,
		metrics:     m,
		observer:    o.observer,
	}, nil
}

// Window 返回窗口长度
func (l *SlidingWindow) Window() time.Duration {
	return l.window
}

// MaxRequests 返回窗口内最大请求数
func (l *SlidingWindow) MaxRequests() int {
	return l.maxRequests
}

// CanSend 判断用户当前能否发送，不记录请求
func (l *SlidingWindow) CanSend(ctx context.Context, user string) (ok bool, err error) {
	if user == "" {
		return false, ErrEmptyUser
	}
	ctx, span := l.observe(ctx, "count", user)
	defer func() { span.End(xmetrics.Result{Err: err, Attrs: []xmetrics.Attr{xmetrics.Bool("allowed", ok)}}) }()

	count, _, err := l.store.Count(ctx, user, l.clock(), l.window)
	if err != nil {
		return false, err
	}
	return count < l.maxRequests, nil
}

// Record 在允许时记录一次请求并返回 true；被限流时不记录，返回 false
func (l *SlidingWindow) Record(ctx context.Context, user string) (allowed bool, err error) {
	if user == "" {
		return false, ErrEmptyUser
	}
	ctx, span := l.observe(ctx, "record", user)
	var count int
	defer func() {
		span.End(xmetrics.Result{Err: err, Attrs: []xmetrics.Attr{
			xmetrics.Bool("allowed", allowed),
			xmetrics.Int("count", count),
		}})
	}()

	allowed, count, err = l.store.RecordIfAllowed(ctx, user, l.clock(), l.window, l.maxRequests)
	if err != nil {
		l.logger.Error(ctx, "record failed",
			xlog.UserID(user),
			xlog.Component(l.store.Type()),
			xlog.Err(err),
		)
		return false, err
	}

	l.metrics.recordAllow(ctx, l.store.Type(), allowed)
	if !allowed {
		l.logger.Debug(ctx, "rate limited", xlog.UserID(user), xlog.Count(int64(count)))
	}
	return allowed, nil
}

// TimeUntilNextAllowed 返回用户需要等待多久才能再次发送，可以立即发送时为 0
func (l *SlidingWindow) TimeUntilNextAllowed(ctx context.Context, user string) (wait time.Duration, err error) {
	if user == "" {
		return 0, ErrEmptyUser
	}
	ctx, span := l.observe(ctx, "count", user)
	defer func() { span.End(xmetrics.Result{Err: err, Attrs: []xmetrics.Attr{xmetrics.Duration("wait", wait)}}) }()

	now := l.clock()
	count, oldest, err := l.store.Count(ctx, user, now, l.window)
	if err != nil {
		return 0, err
	}
	if count < l.maxRequests {
		return 0, nil
	}
	return max(0, l.window-now.Sub(oldest)), nil
}

// Reset 清除用户的全部记录
func (l *SlidingWindow) Reset(ctx context.Context, user string) (err error) {
	if user == "" {
		return ErrEmptyUser
	}
	ctx, span := l.observe(ctx, "reset", user)
	defer func() { span.End(xmetrics.Result{Err: err}) }()
	return l.store.Reset(ctx, user)
}

func (l *SlidingWindow) observe(ctx context.Context, op, user string) (context.Context, xmetrics.Span) {
	kind := xmetrics.KindClient
	if l.store.Type() == StoreTypeLocal {
		kind = xmetrics.KindInternal
	}
	return xmetrics.Start(ctx, l.observer, xmetrics.SpanOptions{
		Component:   "xlimit",
		Operation:   op,
		Kind:        kind,
		Attrs:       []xmetrics.Attr{xmetrics.String("user", user)},
		MetricAttrs: []xmetrics.Attr{xmetrics.String("store", l.store.Type())},
	})
}

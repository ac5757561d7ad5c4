package bench

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/omeyang/rangekit/internal/workload"
	"github.com/omeyang/rangekit/pkg/observability/xlog"
	"github.com/omeyang/rangekit/pkg/observability/xmetrics"
	"github.com/omeyang/rangekit/pkg/storage/xrangesum"
)

// Option 定义 Runner 可选配置
type Option func(*Runner)

// WithLogger 设置日志记录器
func WithLogger(logger xlog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver 设置观测器，每条路径的回放包在一个 span 内
func WithObserver(observer xmetrics.Observer) Option {
	return func(r *Runner) {
		if observer != nil {
			r.observer = observer
		}
	}
}

// WithCacheOptions 设置创建缓存时附加的选项
func WithCacheOptions(opts ...xrangesum.Option) Option {
	return func(r *Runner) {
		r.cacheOpts = append(r.cacheOpts, opts...)
	}
}

// Runner 执行缓存与直接计算的对比
type Runner struct {
	logger    xlog.Logger
	observer  xmetrics.Observer
	cacheOpts []xrangesum.Option
}

// NewRunner 创建 Runner
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:   xlog.Discard(),
		observer: xmetrics.NoopObserver{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Comparison 一次对比的完整结果
type Comparison struct {
	RunID    string
	Baseline Report
	Cached   Report
	Stats    xrangesum.Stats
}

// Speedup 返回直接计算耗时与缓存耗时之比
func (c Comparison) Speedup() float64 {
	if c.Cached.Elapsed <= 0 {
		return 0
	}
	return float64(c.Baseline.Elapsed) / float64(c.Cached.Elapsed)
}

// Compare 在 base 的两个独立副本上分别回放 ops，一次走直接计算，一次走容量为 capacity 的缓存。
//
// 两次回放的摘要不一致时，仍返回完整的 Comparison，同时返回 ErrChecksumMismatch。
func (r *Runner) Compare(ctx context.Context, base []int64, ops []workload.Op, capacity int) (Comparison, error) {
	cmp := Comparison{RunID: uuid.NewString()}
	logger := r.logger.With(xlog.RunID(cmp.RunID))

	cache, err := xrangesum.New(append([]int64(nil), base...), capacity, r.cacheOpts...)
	if err != nil {
		return cmp, err
	}

	logger.Info(ctx, "comparison started",
		xlog.Count(int64(len(ops))),
		slog.Int("size", len(base)),
		slog.Int("capacity", capacity),
	)

	cmp.Baseline, err = r.pass(ctx, logger, "baseline", xrangesum.NewDirect(append([]int64(nil), base...)), ops)
	if err != nil {
		return cmp, err
	}
	cmp.Cached, err = r.pass(ctx, logger, "cached", cache, ops)
	if err != nil {
		return cmp, err
	}
	cmp.Stats = cache.Stats()

	if err := Verify(cmp.Baseline, cmp.Cached); err != nil {
		logger.Error(ctx, "checksum mismatch", xlog.Err(err))
		return cmp, err
	}

	logger.Info(ctx, "comparison finished",
		slog.Float64("speedup", cmp.Speedup()),
		slog.Float64("hit_rate", cmp.Stats.HitRate()),
		slog.Uint64("invalidations", cmp.Stats.Invalidations),
	)
	return cmp, nil
}

// Verify 检查两次回放的结果摘要是否一致
func Verify(baseline, cached Report) error {
	if baseline.Checksum != cached.Checksum || baseline.Queries != cached.Queries {
		return fmt.Errorf("%w: %s=%016x (%d queries) %s=%016x (%d queries)", ErrChecksumMismatch,
			baseline.Name, baseline.Checksum, baseline.Queries,
			cached.Name, cached.Checksum, cached.Queries)
	}
	return nil
}

func (r *Runner) pass(ctx context.Context, logger xlog.Logger, name string, s xrangesum.Summer, ops []workload.Op) (rep Report, err error) {
	ctx, span := xmetrics.Start(ctx, r.observer, xmetrics.SpanOptions{
		Component:   "bench",
		Operation:   "replay",
		Kind:        xmetrics.KindInternal,
		Attrs:       []xmetrics.Attr{xmetrics.Int("ops", len(ops))},
		MetricAttrs: []xmetrics.Attr{xmetrics.String("pass", name)},
	})
	defer func() {
		span.End(xmetrics.Result{
			Err: err,
			Attrs: []xmetrics.Attr{
				xmetrics.Int("queries", rep.Queries),
				xmetrics.Int("updates", rep.Updates),
				xmetrics.Uint64("hits", rep.Hits),
				xmetrics.Float64("hit_rate", rep.HitRate()),
				xmetrics.Duration("elapsed", rep.Elapsed),
			},
		})
	}()

	rep, err = Replay(ctx, name, s, ops)
	if err != nil {
		logger.Error(ctx, "replay failed", xlog.Operation(name), xlog.Err(err))
		return rep, err
	}
	logger.Debug(ctx, "replay finished",
		xlog.Operation(name),
		xlog.Duration(rep.Elapsed),
		slog.Uint64("checksum", rep.Checksum),
	)
	return rep, nil
}

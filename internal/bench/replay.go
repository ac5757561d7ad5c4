package bench

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/omeyang/rangekit/internal/workload"
	"github.com/omeyang/rangekit/pkg/storage/xrangesum"
)

// 预定义错误
var (
	// ErrChecksumMismatch 表示缓存路径与直接计算路径的查询结果不一致
	ErrChecksumMismatch = errors.New("bench: checksum mismatch between baseline and cached runs")

	// ErrUnknownOp 表示操作类型未知
	ErrUnknownOp = errors.New("bench: unknown operation kind")
)

// cancelCheckInterval 每回放多少个操作检查一次 ctx
const cancelCheckInterval = 1024

// Report 单条路径的回放结果
type Report struct {
	Name     string
	Ops      int
	Queries  int
	Updates  int
	Elapsed  time.Duration
	Checksum uint64

	// Hits、Misses 仅在 Summer 提供统计时填充
	Hits   uint64
	Misses uint64
}

// HitRate 返回命中率，没有统计时为 0
func (r Report) HitRate() float64 {
	total := r.Hits + r.Misses
	if total == 0 {
		return 0
	}
	return float64(r.Hits) / float64(total)
}

// statser 由 *xrangesum.Cache 实现
type statser interface {
	Stats() xrangesum.Stats
}

// Replay 按顺序在 s 上执行 ops，返回耗时与结果摘要。
//
// s 实现 [xrangesum.ContextSummer] 时每个操作都带上 ctx，缓存指标因此关联到回放跨度。
// 任一操作出错时立即停止；ctx 取消时返回 ctx.Err()。
func Replay(ctx context.Context, name string, s xrangesum.Summer, ops []workload.Op) (Report, error) {
	rep := Report{Name: name}

	query, update := s.Query, s.Update
	if cs, ok := s.(xrangesum.ContextSummer); ok {
		query = func(l, r int) (int64, error) { return cs.QueryContext(ctx, l, r) }
		update = func(i int, v int64) error { return cs.UpdateContext(ctx, i, v) }
	}

	var before xrangesum.Stats
	st, hasStats := s.(statser)
	if hasStats {
		before = st.Stats()
	}

	digest := xxhash.New()
	var buf [8]byte
	start := time.Now()
	for i, op := range ops {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return rep, err
			}
		}
		switch op.Kind {
		case workload.KindRange:
			v, err := query(op.Left, op.Right)
			if err != nil {
				return rep, fmt.Errorf("bench: %s op %d: %w", name, i, err)
			}
			binary.LittleEndian.PutUint64(buf[:], uint64(v))
			_, _ = digest.Write(buf[:])
			rep.Queries++
		case workload.KindUpdate:
			if err := update(op.Index, op.Value); err != nil {
				return rep, fmt.Errorf("bench: %s op %d: %w", name, i, err)
			}
			rep.Updates++
		default:
			return rep, fmt.Errorf("%w: %v at op %d", ErrUnknownOp, op.Kind, i)
		}
		rep.Ops++
	}
	rep.Elapsed = time.Since(start)
	rep.Checksum = digest.Sum64()

	if hasStats {
		after := st.Stats()
		rep.Hits = after.Hits - before.Hits
		rep.Misses = after.Misses - before.Misses
	}
	return rep, nil
}

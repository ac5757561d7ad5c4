package xrangesum

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/omeyang/rangekit/pkg/observability/xlog"
	"github.com/omeyang/rangekit/pkg/util/xlru"
)

// Cache 是带精确失效的区间和缓存。
//
// Cache 持有数组引用而不复制数据。构造后数组只能通过 [Cache.Update] 修改，
// 否则命中结果与数组状态不一致，Cache 无法检测这种情况。
//
// Cache 是并发安全的。必须通过 [New] 创建。
type Cache struct {
	mu      sync.Mutex
	data    []int64
	store   *xlru.Cache[Range, int64]
	logger  xlog.Logger
	metrics *metrics

	hits          uint64
	misses        uint64
	evictions     uint64
	invalidations uint64
}

var _ ContextSummer = (*Cache)(nil)

// New 创建区间和缓存。
//
// capacity 为最多缓存的区间数，必须为正数，否则返回 ErrInvalidCapacity。
func New(data []int64, capacity int, opts ...Option) (*Cache, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	store, err := xlru.New[Range, int64](xlru.Config{Size: capacity})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCapacity, err)
	}

	m, err := newMetrics(o.meterProvider)
	if err != nil {
		return nil, err
	}

	return &Cache{
		data:    data,
		store:   store,
		logger:  o.logger,
		metrics: m,
	}, nil
}

// Query 返回 data[left..=right] 的和。
//
// 命中时直接返回缓存值并提升其最近使用顺序，不重新计算；
// 未命中时遍历区间求和并写入缓存，可能淘汰一个最久未使用的区间。
func (c *Cache) Query(left, right int) (int64, error) {
	return c.QueryContext(context.Background(), left, right)
}

// QueryContext 同 [Cache.Query]。ctx 只用于指标与日志，
// 其中的跨度会关联到命中/未命中计数的 exemplar；ctx 取消不会中断查询。
func (c *Cache) QueryContext(ctx context.Context, left, right int) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := checkRange(left, right, len(c.data)); err != nil {
		return 0, err
	}

	mctx := context.WithoutCancel(ctx)
	key := Range{Left: left, Right: right}
	if sum, ok := c.store.Get(key); ok {
		c.hits++
		c.metrics.recordQuery(mctx, true, false)
		return sum, nil
	}

	sum := Sum(c.data, left, right)
	evicted := c.store.Set(key, sum)
	c.misses++
	if evicted {
		c.evictions++
	}
	c.metrics.recordQuery(mctx, false, evicted)
	return sum, nil
}

// Update 执行 data[index] = value，并删除所有包含 index 的缓存区间。
//
// 写入与失效扫描在同一临界区内完成，扫描代价与缓存占用成正比。
func (c *Cache) Update(index int, value int64) error {
	return c.UpdateContext(context.Background(), index, value)
}

// UpdateContext 同 [Cache.Update]，ctx 用法与 [Cache.QueryContext] 相同。
func (c *Cache) UpdateContext(ctx context.Context, index int, value int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := checkIndex(index, len(c.data)); err != nil {
		return err
	}

	c.data[index] = value

	// Keys 返回快照，遍历期间删除是安全的
	keys := c.store.Keys()
	removed := 0
	for _, k := range keys {
		if k.Contains(index) {
			c.store.Delete(k)
			removed++
		}
	}
	c.invalidations += uint64(removed)

	ctx = context.WithoutCancel(ctx)
	c.metrics.recordUpdate(ctx, removed, len(keys))
	if removed > 0 {
		c.logger.Debug(ctx, "ranges invalidated",
			xlog.Index(index),
			xlog.Count(int64(removed)),
			slog.Int("scanned", len(keys)),
		)
	}
	return nil
}

// Peek 查看区间是否已缓存，不改变最近使用顺序，也不计入命中统计。
//
// Peek 不校验边界：越界或 left > right 的区间不可能被缓存，
// 因此返回 (0, false)，与未缓存的合法区间无法区分。需要区分时先调用 Query。
func (c *Cache) Peek(left, right int) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Peek(Range{Left: left, Right: right})
}

// Len 返回当前缓存的区间数
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

// Stats 缓存统计快照
type Stats struct {
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	Invalidations uint64
	Len           int
	Capacity      int
}

// HitRate 返回命中率，没有查询时为 0
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Stats 返回当前统计快照
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:          c.hits,
		Misses:        c.misses,
		Evictions:     c.evictions,
		Invalidations: c.invalidations,
		Len:           c.store.Len(),
		Capacity:      c.store.Cap(),
	}
}

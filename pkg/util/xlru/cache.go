package xlru

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// maxSize 缓存最大条目数上限。
const maxSize = 1 << 24 // 16,777,216

// Config 定义缓存配置。
type Config struct {
	// Size 缓存最大条目数。
	// 必须大于 0 且不超过 16,777,216，构造后不可变。
	Size int
}

// Option 定义缓存可选配置函数类型。
type Option[K comparable, V any] func(*options[K, V])

// options 内部可选配置。
type options[K comparable, V any] struct {
	onEvicted func(key K, value V)
}

// WithOnEvicted 设置条目被移除时的回调函数。
//
// 回调在容量淘汰、Delete、Clear 三条路径上都会触发（底层 simplelru 的行为）。
// 只关心容量淘汰的调用方应使用 [Cache.Set] 的返回值。
// 严禁在回调中调用 Cache 自身的方法。
func WithOnEvicted[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(o *options[K, V]) {
		o.onEvicted = fn
	}
}

// Cache 是固定容量的 LRU 存储。
//
// 底层为 simplelru：双向链表维护访问顺序，哈希表索引链表节点，
// Get/Set/Delete 均为 O(1)，淘汰从链表尾部摘除节点。
//
// Cache 不是并发安全的，调用方负责串行化访问。
// 必须通过 [New] 创建，零值不可用。
type Cache[K comparable, V any] struct {
	lru  *simplelru.LRU[K, V]
	size int
}

// New 创建新的 LRU 缓存。
// 如果 cfg.Size <= 0，返回 ErrInvalidSize。
// 如果 cfg.Size > maxSize (16,777,216)，返回 ErrSizeExceedsMax。
func New[K comparable, V any](cfg Config, opts ...Option[K, V]) (*Cache[K, V], error) {
	if cfg.Size <= 0 {
		return nil, ErrInvalidSize
	}
	if cfg.Size > maxSize {
		return nil, ErrSizeExceedsMax
	}

	o := &options[K, V]{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	var onEvict simplelru.EvictCallback[K, V]
	if o.onEvicted != nil {
		onEvict = o.onEvicted
	}

	lru, err := simplelru.NewLRU(cfg.Size, onEvict)
	if err != nil {
		// Size 已校验，simplelru 只会在 size <= 0 时失败
		return nil, ErrInvalidSize
	}

	return &Cache[K, V]{
		lru:  lru,
		size: cfg.Size,
	}, nil
}

// Get 获取缓存值，命中时将键提升为最近使用。
// 键不存在时返回零值和 false；false 是唯一的"缺失"信号，零值本身是合法缓存值。
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	return c.lru.Get(key)
}

// Set 插入或覆盖缓存值，并将键提升为最近使用。
// 返回值表示是否触发了容量淘汰（恰好淘汰一条最久未使用的条目）。
//
//   - 如果 key 已存在，更新值，返回 false
//   - 如果 key 不存在且缓存已满，先插入再淘汰最久未使用的条目，返回 true
func (c *Cache[K, V]) Set(key K, value V) bool {
	return c.lru.Add(key, value)
}

// Delete 删除缓存条目。
// 返回 true 表示键存在并被删除；键不存在时为无操作。
func (c *Cache[K, V]) Delete(key K) bool {
	return c.lru.Remove(key)
}

// Clear 清空所有缓存条目。
func (c *Cache[K, V]) Clear() {
	c.lru.Purge()
}

// Len 返回当前缓存条目数，始终不超过 Cap。
func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}

// Cap 返回构造时确定的容量。
func (c *Cache[K, V]) Cap() int {
	return c.size
}

// Contains 检查键是否存在（不更新访问顺序）。
func (c *Cache[K, V]) Contains(key K) bool {
	return c.lru.Contains(key)
}

// Peek 获取缓存值但不更新 LRU 顺序。
func (c *Cache[K, V]) Peek(key K) (value V, ok bool) {
	return c.lru.Peek(key)
}

// Keys 返回所有键的快照，按从最旧到最新的顺序排列。
//
// 返回的切片是新分配的，调用方可以在遍历快照的同时调用 Delete。
func (c *Cache[K, V]) Keys() []K {
	return c.lru.Keys()
}

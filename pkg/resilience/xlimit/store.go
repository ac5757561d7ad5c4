package xlimit

import (
	"context"
	"time"
)

// 内置存储的 Type 取值
const (
	StoreTypeLocal = "local"
	StoreTypeRedis = "redis"
)

// Store 保存每个用户的请求时间戳。
//
// 每个方法都先清理 key 在 now 时刻已过期的时间戳（t <= now-window），
// 清理后为空的 key 被移除。实现必须是并发安全的。
type Store interface {
	// Count 返回窗口内的请求数和最早时间戳；count 为 0 时 oldest 为零值
	Count(ctx context.Context, key string, now time.Time, window time.Duration) (count int, oldest time.Time, err error)

	// RecordIfAllowed 在窗口内请求数小于 limit 时记录 now，返回是否记录以及处理后的请求数
	RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (allowed bool, count int, err error)

	// Reset 删除 key 的全部时间戳
	Reset(ctx context.Context, key string) error

	// Type 返回存储类型，用于日志和指标；除 StoreTypeLocal 外都视为远端存储
	Type() string
}

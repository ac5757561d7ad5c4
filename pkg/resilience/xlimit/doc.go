// Package xlimit 提供按用户的滑动窗口限流。
//
// # 核心概念
//
//   - SlidingWindow：限流器，窗口长度 Window 内每个用户最多 MaxRequests 次请求
//   - Store：时间戳存储，[LocalStore] 为进程内实现，[RedisStore] 为基于有序集合的分布式实现
//
// # 窗口语义
//
// 时间戳 t 在时刻 now 过期当且仅当 t <= now - Window。
// 每次访问先清理该用户的过期时间戳；没有存活时间戳的用户从存储中移除。
//
// 用户达到上限时，需要等待最早的时间戳过期：
//
//	wait = Window - (now - oldest)，下限为 0
//
// # 快速开始
//
//	limiter, err := xlimit.New(xlimit.NewLocalStore(),
//		xlimit.WithWindow(10*time.Second),
//		xlimit.WithMaxRequests(1),
//	)
//	ok, err := limiter.Record(ctx, "user-1")
//	if !ok {
//		wait, _ := limiter.TimeUntilNextAllowed(ctx, "user-1")
//		log.Printf("retry after %v", wait)
//	}
//
// # 分布式
//
// RedisStore 用一个 Lua 脚本原子地完成"清理、计数、记录"，多个进程共享同一用户的窗口。
// 时间戳由调用方时钟给出，各进程时钟偏差会直接体现为窗口偏差。
//
// # 可观测性
//
// WithMeterProvider 记录放行与拒绝计数。WithObserver 为每次存储访问开启
// xmetrics 跨度，访问 Redis 时跨度类型为 KindClient。
package xlimit

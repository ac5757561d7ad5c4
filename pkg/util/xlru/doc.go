// Package xlru 提供固定容量的 LRU 存储。
//
// xlru 基于 github.com/hashicorp/golang-lru/v2/simplelru 封装，
// 提供简洁的泛型 API，是 xrangesum 区间和缓存的底层淘汰存储。
//
// # 核心特性
//
//   - 泛型支持：支持任意 comparable 的键类型和任意值类型
//   - LRU 淘汰：插入新键使条目数超过容量时，淘汰恰好一条最久未访问的条目
//   - 显式缺失：Get/Peek 返回 (value, ok)，不使用哨兵值，任意值都可以合法缓存
//   - 键快照：Keys 返回新分配的切片，遍历期间可以安全删除
//
// # 配置选项
//
// Config 结构体提供必需的配置：
//   - Size：缓存最大条目数，必须 > 0 且 ≤ 16,777,216
//
// 可选配置通过 Option 函数提供：
//   - WithOnEvicted：设置条目被移除时的回调函数
//
// # 性能特性
//
//   - Get/Set/Delete 操作 O(1) 时间复杂度
//   - Keys() 会分配新切片，复杂度 O(n)
//
// # 已知限制
//
//   - 非并发安全：Get 会改写访问顺序，调用方需要自行加锁串行化
//   - Size 是条目数量，不是内存大小
//   - OnEvicted 在 Delete、Clear 时同样触发；只统计容量淘汰请使用 Set 的返回值
package xlru

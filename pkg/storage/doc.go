// Package storage 提供数据存储相关的子包。
//
// 子包列表：
//   - xrangesum: 区间和查询的 LRU 结果缓存，单点更新时精确失效
//
// 设计原则：
//   - 缓存结果与直接计算始终一致
//   - 内置可观测性（指标、日志）
package storage

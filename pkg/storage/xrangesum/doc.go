// Package xrangesum 提供对可变整数数组的区间和查询缓存。
//
// # 核心概念
//
//   - Range：闭区间 [Left, Right]，是缓存键
//   - Cache：基于 xlru 的 LRU 缓存，键为 Range，值为区间和
//   - Direct：无缓存的基线实现，查询 O(区间长度)，写入 O(1)
//   - Summer：Cache 与 Direct 共同实现的 Query/Update 接口
//
// # 正确性
//
// Cache 的命中结果始终等于对当前数组的重新计算。这依赖于一个约束：
// 数组只能通过 [Cache.Update] 修改。绕过 Update 直接写底层切片，
// Cache 无法感知，命中结果会与数组不一致。
//
// Update 先写数组，再对缓存键做线性扫描，删除所有包含该下标的区间。
// 失效是精确的：包含下标的区间全部删除，不包含的区间保持命中且值不变。
//
// # 复杂度
//
//   - Query 命中：O(1)，不重新计算
//   - Query 未命中：O(Right-Left+1)
//   - Update：O(缓存占用)，与数组长度无关
//
// 失效扫描刻意保持线性，不引入区间索引结构。
//
// # 并发
//
// Query 和 Update 在同一把互斥锁内执行：Update 的写入与失效扫描是一个临界区，
// Query 的 LRU 访问顺序更新也被串行化。
//
// # 快速开始
//
//	data := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
//	cache, err := xrangesum.New(data, 3)
//	if err != nil {
//		return err
//	}
//	sum, err := cache.Query(0, 4) // 15
//	err = cache.Update(7, 100)     // 失效所有包含下标 7 的区间
package xrangesum

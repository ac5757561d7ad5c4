package xrangesum

import (
	"context"
	"strconv"
)

// Range 是闭区间 [Left, Right]，唯一标识数组的一段连续切片。
type Range struct {
	Left  int
	Right int
}

// Contains 判断下标 i 是否落在区间内
func (r Range) Contains(i int) bool {
	return r.Left <= i && i <= r.Right
}

// Len 返回区间覆盖的元素个数
func (r Range) Len() int {
	return r.Right - r.Left + 1
}

// String 返回 "[left,right]" 形式
func (r Range) String() string {
	return "[" + strconv.Itoa(r.Left) + "," + strconv.Itoa(r.Right) + "]"
}

// Summer 是区间和查询与单点更新的统一入口。
//
// [Cache] 和 [Direct] 都实现该接口，基准工具通过它对比两条路径。
type Summer interface {
	// Query 返回 data[left..=right] 的和，要求 0 <= left <= right < N
	Query(left, right int) (int64, error)
	// Update 执行 data[index] = value，要求 0 <= index < N
	Update(index int, value int64) error
}

// ContextSummer 是接受 ctx 的 [Summer]。ctx 不影响计算结果，
// 只把调用方的跨度带到指标和日志里。[Cache] 实现该接口，[Direct] 不实现。
type ContextSummer interface {
	Summer
	QueryContext(ctx context.Context, left, right int) (int64, error)
	UpdateContext(ctx context.Context, index int, value int64) error
}

// Sum 直接遍历计算 data[left..=right] 的和，不做边界检查。
func Sum(data []int64, left, right int) int64 {
	var s int64
	for _, v := range data[left : right+1] {
		s += v
	}
	return s
}

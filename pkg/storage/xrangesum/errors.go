package xrangesum

import (
	"errors"
	"fmt"
)

// 预定义错误，使用 errors.Is 进行比较
var (
	// ErrInvalidCapacity 表示缓存容量无效（必须为正数）
	ErrInvalidCapacity = errors.New("xrangesum: invalid capacity")

	// ErrIndexOutOfRange 表示下标越界或区间左端大于右端
	ErrIndexOutOfRange = errors.New("xrangesum: index out of range")
)

// RangeError 描述一次越界调用。
//
// errors.Is(err, ErrIndexOutOfRange) 对 *RangeError 返回 true。
type RangeError struct {
	// Op 是被拒绝的操作："query" 或 "update"
	Op string

	// Left、Right 为查询区间；update 时二者都等于下标
	Left, Right int

	// Len 是数组长度
	Len int
}

// Error 实现 error 接口
func (e *RangeError) Error() string {
	if e.Op == opUpdate {
		return fmt.Sprintf("xrangesum: update index %d out of range [0,%d)", e.Left, e.Len)
	}
	return fmt.Sprintf("xrangesum: query range [%d,%d] invalid for length %d", e.Left, e.Right, e.Len)
}

// Is 支持 errors.Is(err, ErrIndexOutOfRange)
func (e *RangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

const (
	opQuery  = "query"
	opUpdate = "update"
)

// checkRange 校验 0 <= left <= right < n
func checkRange(left, right, n int) error {
	if left < 0 || left > right || right >= n {
		return &RangeError{Op: opQuery, Left: left, Right: right, Len: n}
	}
	return nil
}

// checkIndex 校验 0 <= index < n
func checkIndex(index, n int) error {
	if index < 0 || index >= n {
		return &RangeError{Op: opUpdate, Left: index, Right: index, Len: n}
	}
	return nil
}

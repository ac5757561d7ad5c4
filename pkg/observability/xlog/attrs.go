package xlog

import (
	"log/slog"
	"strconv"
	"time"
)

// =============================================================================
// 常用属性 Key 常量
// =============================================================================

const (
	// KeyError 错误字段的标准 key
	KeyError = "error"

	// KeyDuration 耗时字段的标准 key
	KeyDuration = "duration"

	// KeyCount 计数字段的标准 key
	KeyCount = "count"

	// KeyComponent 组件名称字段的标准 key
	KeyComponent = "component"

	// KeyOperation 操作名称字段的标准 key
	KeyOperation = "operation"

	// KeyRange 闭区间字段的标准 key，值形如 "[3,7]"
	KeyRange = "range"

	// KeyIndex 数组下标字段的标准 key
	KeyIndex = "index"

	// KeyUserID 用户 ID 字段的标准 key
	KeyUserID = "user_id"

	// KeyRunID 一次基准运行的标识
	KeyRunID = "run_id"
)

// =============================================================================
// 便捷属性构造函数
// =============================================================================

// Err 创建错误属性
//
// 如果 err 为 nil，返回空属性（会被 slog 忽略）。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 创建耗时属性，输出人类可读格式（如 "1.5s"）
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Component 创建组件名属性
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Operation 创建操作名属性
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Count 创建计数属性
func Count(n int64) slog.Attr {
	return slog.Int64(KeyCount, n)
}

// Range 创建闭区间属性
func Range(left, right int) slog.Attr {
	return slog.String(KeyRange, "["+strconv.Itoa(left)+","+strconv.Itoa(right)+"]")
}

// Index 创建下标属性
func Index(i int) slog.Attr {
	return slog.Int(KeyIndex, i)
}

// UserID 创建用户 ID 属性
func UserID(id string) slog.Attr {
	return slog.String(KeyUserID, id)
}

// RunID 创建运行标识属性
func RunID(id string) slog.Attr {
	return slog.String(KeyRunID, id)
}

package xlog

import "errors"

var (
	// ErrNilOutput 表示输出目标为 nil
	ErrNilOutput = errors.New("xlog: output writer is nil")

	// ErrInvalidMaxSize 表示轮转文件大小无效（必须在 1~10240 MB 范围内）
	ErrInvalidMaxSize = errors.New("xlog: invalid rotation max size")

	// ErrInvalidRetention 表示备份数量或保留天数为负数
	ErrInvalidRetention = errors.New("xlog: invalid rotation retention")
)

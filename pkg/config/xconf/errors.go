package xconf

import "errors"

// 预定义错误，使用 errors.Is 进行比较
var (
	// ErrEmptyPath 表示未给出配置文件路径
	ErrEmptyPath = errors.New("xconf: config path is empty")

	// ErrUnsupportedFormat 表示扩展名或格式不是 yaml/yml/json
	ErrUnsupportedFormat = errors.New("xconf: unsupported config format, want yaml or json")

	// ErrLoadFailed 表示配置文件无法读取
	ErrLoadFailed = errors.New("xconf: read config file")

	// ErrParseFailed 表示文件内容不是合法的 YAML/JSON
	ErrParseFailed = errors.New("xconf: parse config")

	// ErrUnmarshalFailed 表示配置无法解码到目标结构体（类型不符，或严格模式下出现未知键）
	ErrUnmarshalFailed = errors.New("xconf: decode config")
)

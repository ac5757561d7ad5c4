package xlog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level 日志级别，数值与 slog.Level 相同。
//
// Level 实现 encoding.TextUnmarshaler，配置文件里的 "debug"、"warn" 等文本
// 可以直接解码到 Level 类型的字段。
type Level slog.Level

const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// String 返回 slog 的级别名，如 "DEBUG"、"INFO+2"
func (l Level) String() string {
	return slog.Level(l).String()
}

// UnmarshalText 按 ParseLevel 的规则解析
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 解析级别名，大小写不敏感，忽略首尾空白。
// 接受 slog 的写法（debug/info/warn/error，以及 "info+2" 这样的偏移），
// 另外接受 "warning" 作为 warn 的别名。
func ParseLevel(s string) (Level, error) {
	name := strings.TrimSpace(s)
	if strings.EqualFold(name, "warning") {
		return LevelWarn, nil
	}
	var sl slog.Level
	if err := sl.UnmarshalText([]byte(name)); err != nil {
		return LevelInfo, fmt.Errorf("xlog: unknown level %q", s)
	}
	return Level(sl), nil
}

package xmetrics

import "time"

// String 创建字符串属性。
func String(key, value string) Attr { return Attr{Key: key, Value: value} }

// Bool 创建布尔属性，如限流结果 allowed。
func Bool(key string, value bool) Attr { return Attr{Key: key, Value: value} }

// Int 创建整数属性，如回放的查询数。
func Int(key string, value int) Attr { return Attr{Key: key, Value: value} }

// Uint64 创建计数属性，如缓存命中数。超过 int64 范围时以十进制字符串写出。
func Uint64(key string, value uint64) Attr { return Attr{Key: key, Value: value} }

// Float64 创建浮点属性，如命中率。
func Float64(key string, value float64) Attr { return Attr{Key: key, Value: value} }

// Duration 创建耗时属性，以秒为单位的浮点数写出，与 duration 直方图单位一致。
func Duration(key string, value time.Duration) Attr { return Attr{Key: key, Value: value} }

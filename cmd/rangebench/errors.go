package main

import (
	"strings"
)

// exitError 表示命令已完成输出，只需设置非零退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 表示参数或配置错误，对应退出码 2。
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// cliUsageMarkers urfave/cli 与 flag 解析器产生的参数错误特征
var cliUsageMarkers = []string{
	"flag provided but not defined",
	"invalid value",
	"No help topic for",
	"Required flag",
	"requires a value",
}

// isCLIUsageError 判断错误是否来自 CLI 框架的参数解析
func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, m := range cliUsageMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

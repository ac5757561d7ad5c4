// rangebench 对比区间和查询在 LRU 缓存与直接计算两条路径上的性能，
// 并演示按用户的滑动窗口限流。
//
// 用法:
//
//	rangebench [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config      配置文件路径（.yaml/.yml/.json）
//	    --log-level   日志级别 (debug/info/warn/error，默认 info)
//	    --log-format  日志格式 (text/json，默认 text)
//	    --log-file    日志文件路径，设置后按大小轮转
//	    --metrics     结束时输出 OpenTelemetry 指标汇总
//
// 命令:
//
//	run     生成工作负载，分别在直接计算与 LRU 缓存上回放并对比
//	        省略命令时执行 run，run 的参数可直接写在全局选项之后
//	limit   在模拟时钟上回放消息流，演示滑动窗口限流
//
// 配置优先级：命令行参数 > 配置文件 > 默认值。
//
// 退出码:
//
//	0: 成功
//	1: 执行失败（包括缓存与直接计算结果不一致）
//	2: 参数错误
//
// 示例:
//
//	rangebench run --size 100000 --queries 50000 --capacity 1000
//	rangebench --metrics -k 500
//	rangebench -c bench.yaml run
//	rangebench limit --window 10s --max 1
//	rangebench limit --redis localhost:6379
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入）
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// createApp 创建 CLI 应用。
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "rangebench",
		Usage:     "区间和 LRU 缓存基准与滑动窗口限流演示",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "配置文件路径（.yaml/.yml/.json）",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "日志级别 (debug/info/warn/error)",
			},
			&cli.StringFlag{
				Name:  flagLogFormat,
				Usage: "日志格式 (text/json)",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "日志文件路径，设置后按大小轮转",
			},
			&cli.BoolFlag{
				Name:  flagMetrics,
				Usage: "结束时输出指标汇总",
			},
		}, runFlags(true)...),
		Commands: []*cli.Command{
			createRunCommand(),
			createLimitCommand(),
		},
		// 不带子命令时执行 run
		Action: runAction,
		// 禁止 urfave/cli 直接调用 os.Exit，退出码由 run 统一映射
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(stderr, err)
			}
		},
	}
}

// run 执行命令并返回退出码
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)
	if err := app.Run(ctx, args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		if isCLIUsageError(err) {
			fmt.Fprintf(stderr, "参数错误: %v\n", err)
			return 2
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}

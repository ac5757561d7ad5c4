package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/rangekit/internal/bench"
	"github.com/omeyang/rangekit/internal/workload"
	"github.com/omeyang/rangekit/pkg/observability/xlog"
	"github.com/omeyang/rangekit/pkg/storage/xrangesum"
)

// createRunCommand 创建 run 子命令。
func createRunCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "对比直接计算与 LRU 缓存的区间和查询",
		Flags:  runFlags(false),
		Action: runAction,
	}
}

// runFlags 返回 run 的参数。根命令也挂一份（local 为 true），
// 使省略 run 时参数照样生效，且不会与 limit 的 --seed 冲突。
func runFlags(local bool) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "size", Aliases: []string{"n"}, Usage: "数组长度", Local: local},
		&cli.IntFlag{Name: "queries", Aliases: []string{"q"}, Usage: "操作总数", Local: local},
		&cli.IntFlag{Name: "capacity", Aliases: []string{"k"}, Usage: "缓存的最大区间数", Local: local},
		&cli.IntFlag{Name: "hot-pool", Usage: "热点区间数量", Local: local},
		&cli.FloatFlag{Name: "hot-prob", Usage: "查询落在热点区间的概率", Local: local},
		&cli.FloatFlag{Name: "update-prob", Usage: "操作为单点更新的概率", Local: local},
		&cli.Uint64Flag{Name: "seed", Usage: "随机种子", Local: local},
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd, applyRunFlags)
	if err != nil {
		return err
	}
	return cmdRun(ctx, cfg, cmd.Root().Writer, cmd.Root().ErrWriter)
}

// applyRunFlags 将 run 子命令的 flag 写入配置
func applyRunFlags(cmd *cli.Command, cfg *Config) {
	w := &cfg.Run.Workload
	if cmd.IsSet("size") {
		w.Size = cmd.Int("size")
	}
	if cmd.IsSet("queries") {
		w.Queries = cmd.Int("queries")
	}
	if cmd.IsSet("capacity") {
		cfg.Run.Capacity = cmd.Int("capacity")
	}
	if cmd.IsSet("hot-pool") {
		w.HotPool = cmd.Int("hot-pool")
	}
	if cmd.IsSet("hot-prob") {
		w.HotProb = cmd.Float("hot-prob")
	}
	if cmd.IsSet("update-prob") {
		w.UpdateProb = cmd.Float("update-prob")
	}
	if cmd.IsSet("seed") {
		w.Seed = cmd.Uint64("seed")
	}
}

func cmdRun(ctx context.Context, cfg *Config, stdout, stderr io.Writer) (err error) {
	tel, err := newTelemetry(cfg, stderr)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := tel.close(context.WithoutCancel(ctx)); cerr != nil && err == nil {
			err = cerr
		}
	}()

	start := time.Now()
	gen, err := workload.NewGenerator(cfg.Run.Workload)
	if err != nil {
		return &usageError{err: err}
	}
	ops := gen.Ops()
	queries, updates := workload.Count(ops)
	tel.logger.Info(ctx, "workload generated",
		xlog.Count(int64(len(ops))),
		xlog.Duration(time.Since(start)),
	)

	runner := bench.NewRunner(
		bench.WithLogger(tel.logger),
		bench.WithObserver(tel.observer),
		bench.WithCacheOptions(
			xrangesum.WithLogger(tel.logger),
			xrangesum.WithMeterProvider(tel.meterProvider()),
		),
	)
	cmp, err := runner.Compare(ctx, gen.Array(), ops, cfg.Run.Capacity)
	if err != nil && !errors.Is(err, bench.ErrChecksumMismatch) {
		return err
	}

	printComparison(stdout, cfg, cmp, queries, updates)
	if rerr := tel.report(ctx, stdout); rerr != nil {
		return rerr
	}

	if err != nil {
		fmt.Fprintf(stderr, "缓存结果与直接计算不一致，请检查失效逻辑: %v\n", err)
		return &exitError{code: 1}
	}
	return nil
}

func printComparison(w io.Writer, cfg *Config, cmp bench.Comparison, queries, updates int) {
	wl := cfg.Run.Workload
	st := cmp.Stats

	fmt.Fprintf(w, "run id     : %s\n", cmp.RunID)
	fmt.Fprintf(w, "workload   : N=%d Q=%d (range=%d update=%d) seed=%d\n",
		wl.Size, wl.Queries, queries, updates, wl.Seed)
	fmt.Fprintf(w, "no cache   : %8.3fs\n", cmp.Baseline.Elapsed.Seconds())
	fmt.Fprintf(w, "lru cache  : %8.3fs  (speedup x%.1f, K=%d)\n",
		cmp.Cached.Elapsed.Seconds(), cmp.Speedup(), cfg.Run.Capacity)
	fmt.Fprintf(w, "cache stats: hits=%d misses=%d hit-rate=%.1f%% evictions=%d invalidations=%d\n",
		st.Hits, st.Misses, st.HitRate()*100, st.Evictions, st.Invalidations)
	fmt.Fprintf(w, "checksum   : baseline=%016x cached=%016x\n",
		cmp.Baseline.Checksum, cmp.Cached.Checksum)
}

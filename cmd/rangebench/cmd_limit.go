package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	retry "github.com/avast/retry-go/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/rangekit/pkg/observability/xlog"
	"github.com/omeyang/rangekit/pkg/resilience/xlimit"
)

// createLimitCommand 创建 limit 子命令。
func createLimitCommand() *cli.Command {
	return &cli.Command{
		Name:  "limit",
		Usage: "在模拟时钟上演示滑动窗口限流",
		Description: `两轮消息，每轮 --messages 条，消息 i 属于用户 i%users+1，
相邻消息间隔在 [--min-delay, --max-delay] 内随机，两轮之间停顿 --pause。
时钟为模拟时钟，命令立即完成。`,
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "window", Aliases: []string{"w"}, Usage: "窗口长度"},
			&cli.IntFlag{Name: "max", Aliases: []string{"m"}, Usage: "窗口内每个用户的最大消息数"},
			&cli.IntFlag{Name: "messages", Usage: "每轮消息数"},
			&cli.IntFlag{Name: "users", Usage: "用户数"},
			&cli.DurationFlag{Name: "pause", Usage: "两轮之间的停顿"},
			&cli.DurationFlag{Name: "min-delay", Usage: "相邻消息最小间隔"},
			&cli.DurationFlag{Name: "max-delay", Usage: "相邻消息最大间隔"},
			&cli.Uint64Flag{Name: "seed", Usage: "随机种子"},
			&cli.StringFlag{Name: "redis", Usage: "Redis 地址，设置后使用 Redis 存储"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd, applyLimitFlags)
			if err != nil {
				return err
			}
			return cmdLimit(ctx, cfg, cmd.Root().Writer, cmd.Root().ErrWriter)
		},
	}
}

// applyLimitFlags 将 limit 子命令的 flag 写入配置
func applyLimitFlags(cmd *cli.Command, cfg *Config) {
	l := &cfg.Limit
	if cmd.IsSet("window") {
		l.Window = cmd.Duration("window")
	}
	if cmd.IsSet("max") {
		l.MaxRequests = cmd.Int("max")
	}
	if cmd.IsSet("messages") {
		l.Messages = cmd.Int("messages")
	}
	if cmd.IsSet("users") {
		l.Users = cmd.Int("users")
	}
	if cmd.IsSet("pause") {
		l.Pause = cmd.Duration("pause")
	}
	if cmd.IsSet("min-delay") {
		l.MinDelay = cmd.Duration("min-delay")
	}
	if cmd.IsSet("max-delay") {
		l.MaxDelay = cmd.Duration("max-delay")
	}
	if cmd.IsSet("seed") {
		l.Seed = cmd.Uint64("seed")
	}
	if cmd.IsSet("redis") {
		l.Redis = cmd.String("redis")
	}
}

// simClock 模拟时钟，只在演示中单协程推进
type simClock struct {
	now time.Time
}

func (c *simClock) Now() time.Time { return c.now }

func (c *simClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func cmdLimit(ctx context.Context, cfg *Config, stdout, stderr io.Writer) (err error) {
	tel, err := newTelemetry(cfg, stderr)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := tel.close(context.WithoutCancel(ctx)); cerr != nil && err == nil {
			err = cerr
		}
	}()

	lc := cfg.Limit
	store, closeStore, err := newLimitStore(ctx, lc.Redis, tel.logger)
	if err != nil {
		return err
	}
	defer closeStore()

	clock := &simClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter, err := xlimit.New(store,
		xlimit.WithWindow(lc.Window),
		xlimit.WithMaxRequests(lc.MaxRequests),
		xlimit.WithClock(clock.Now),
		xlimit.WithLogger(tel.logger),
		xlimit.WithMeterProvider(tel.meterProvider()),
		xlimit.WithObserver(tel.observer),
	)
	if err != nil {
		return &usageError{err: err}
	}

	rng := rand.New(rand.NewPCG(lc.Seed, lc.Seed+1))
	delay := func() time.Duration {
		span := int64(lc.MaxDelay - lc.MinDelay)
		if span == 0 {
			return lc.MinDelay
		}
		return lc.MinDelay + time.Duration(rng.Int64N(span+1))
	}

	fmt.Fprintf(stdout, "store: %s, window: %v, max per user: %d\n", store.Type(), lc.Window, lc.MaxRequests)

	id := 1
	for round := range 2 {
		if round == 0 {
			fmt.Fprintln(stdout, "\n=== message stream ===")
		} else {
			fmt.Fprintf(stdout, "\nwaiting %v...\n", lc.Pause)
			clock.Advance(lc.Pause)
			fmt.Fprintln(stdout, "\n=== new batch after pause ===")
		}
		for range lc.Messages {
			user := strconv.Itoa(id%lc.Users + 1)
			ok, err := limiter.Record(ctx, user)
			if err != nil {
				return err
			}
			wait, err := limiter.TimeUntilNextAllowed(ctx, user)
			if err != nil {
				return err
			}
			status := "✓"
			if !ok {
				status = fmt.Sprintf("× (wait %.1fs)", wait.Seconds())
			}
			fmt.Fprintf(stdout, "message %2d | user %s | %s\n", id, user, status)
			id++
			clock.Advance(delay())
		}
	}

	return tel.report(ctx, stdout)
}

// redis 连接探测的重试参数
const (
	redisPingAttempts = 3
	redisPingDelay    = 200 * time.Millisecond
)

// newLimitStore 根据地址选择存储，addr 为空时使用进程内存储。
// Redis 存储的键前缀带本次运行的 ID，重复运行互不干扰。
func newLimitStore(ctx context.Context, addr string, logger xlog.Logger) (xlimit.Store, func(), error) {
	if addr == "" {
		return xlimit.NewLocalStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	closeFn := func() { _ = client.Close() }

	err := retry.New(
		retry.Context(ctx),
		retry.Attempts(redisPingAttempts),
		retry.Delay(redisPingDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn(ctx, "redis ping failed, retrying",
				xlog.Count(int64(n+1)),
				xlog.Err(err),
			)
		}),
	).Do(func() error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}

	store, err := xlimit.NewRedisStore(client,
		xlimit.WithKeyPrefix("rangebench:"+uuid.NewString()+":"))
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return store, closeFn, nil
}

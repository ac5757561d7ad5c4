package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/rangekit/internal/workload"
	"github.com/omeyang/rangekit/pkg/config/xconf"
	"github.com/omeyang/rangekit/pkg/observability/xlog"
	"github.com/omeyang/rangekit/pkg/resilience/xlimit"
)

// 全局 flag 名称
const (
	flagConfig    = "config"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagLogFile   = "log-file"
	flagMetrics   = "metrics"
)

// Config 命令行工具的完整配置
type Config struct {
	Log     LogConfig   `koanf:"log"`
	Metrics bool        `koanf:"metrics"`
	Run     RunConfig   `koanf:"run"`
	Limit   LimitConfig `koanf:"limit"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 接受 debug/info/warn/error 及 "info+2" 形式
	Level xlog.Level `koanf:"level"`

	Format string `koanf:"format"`

	// File 非空时写入文件并按大小轮转
	File string `koanf:"file"`

	// MaxSizeMB 单个日志文件的最大尺寸
	MaxSizeMB int `koanf:"max_size_mb"`
}

// RunConfig run 命令配置
type RunConfig struct {
	// Capacity 缓存的最大区间数
	Capacity int `koanf:"capacity"`

	Workload workload.Config `koanf:"workload"`
}

// LimitConfig limit 命令配置
type LimitConfig struct {
	Window      time.Duration `koanf:"window"`
	MaxRequests int           `koanf:"max_requests"`

	// Messages 每轮发送的消息数
	Messages int `koanf:"messages"`

	// Users 参与的用户数，消息 i 属于用户 i%Users+1
	Users int `koanf:"users"`

	// Pause 两轮之间的停顿
	Pause time.Duration `koanf:"pause"`

	// MinDelay、MaxDelay 相邻消息间的随机间隔
	MinDelay time.Duration `koanf:"min_delay"`
	MaxDelay time.Duration `koanf:"max_delay"`

	Seed uint64 `koanf:"seed"`

	// Redis 非空时使用该地址的 Redis 存储
	Redis string `koanf:"redis"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:     xlog.LevelInfo,
			Format:    "text",
			MaxSizeMB: 100,
		},
		Run: RunConfig{
			Capacity: 1000,
			Workload: workload.DefaultConfig(),
		},
		Limit: LimitConfig{
			Window:      xlimit.DefaultWindow,
			MaxRequests: xlimit.DefaultMaxRequests,
			Messages:    10,
			Users:       5,
			Pause:       4 * time.Second,
			MinDelay:    100 * time.Millisecond,
			MaxDelay:    time.Second,
			Seed:        1,
		},
	}
}

// Validate 校验与命令无关的配置
func (c *Config) Validate() error {
	var errs []error
	if c.Run.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("run.capacity must be positive, got %d", c.Run.Capacity))
	}
	if err := c.Run.Workload.Validate(); err != nil {
		errs = append(errs, err)
	}
	l := c.Limit
	if l.Messages < 0 || l.Users <= 0 {
		errs = append(errs, fmt.Errorf("limit.messages must be >= 0 and limit.users > 0, got %d/%d", l.Messages, l.Users))
	}
	if l.MinDelay < 0 || l.MinDelay > l.MaxDelay {
		errs = append(errs, fmt.Errorf("limit delays must satisfy 0 <= min <= max, got %v/%v", l.MinDelay, l.MaxDelay))
	}
	if l.Pause < 0 {
		errs = append(errs, fmt.Errorf("limit.pause must not be negative, got %v", l.Pause))
	}
	return errors.Join(errs...)
}

// loadConfig 按"默认值 → 配置文件 → 命令行参数"的顺序构造配置。
// 配置文件按严格模式解码，未知键视为参数错误。
// apply 将子命令自己的 flag 写入配置。
func loadConfig(cmd *cli.Command, apply func(*cli.Command, *Config)) (*Config, error) {
	cfg := DefaultConfig()
	if err := xconf.Load(cmd.String(flagConfig), "", &cfg, xconf.WithStrict()); err != nil {
		return nil, &usageError{err: err}
	}

	if cmd.IsSet(flagLogLevel) {
		level, err := xlog.ParseLevel(cmd.String(flagLogLevel))
		if err != nil {
			return nil, &usageError{err: err}
		}
		cfg.Log.Level = level
	}
	if cmd.IsSet(flagLogFormat) {
		cfg.Log.Format = cmd.String(flagLogFormat)
	}
	if cmd.IsSet(flagLogFile) {
		cfg.Log.File = cmd.String(flagLogFile)
	}
	if cmd.IsSet(flagMetrics) {
		cfg.Metrics = cmd.Bool(flagMetrics)
	}

	if apply != nil {
		apply(cmd, &cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, &usageError{err: err}
	}
	return &cfg, nil
}

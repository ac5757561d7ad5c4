package xlimit

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	//go:embed lua/record.lua
	recordLuaSource string

	//go:embed lua/count.lua
	countLuaSource string

	recordScript = redis.NewScript(recordLuaSource)
	countScript  = redis.NewScript(countLuaSource)
)

// defaultKeyPrefix Redis 键前缀默认值
const defaultKeyPrefix = "xlimit:sw:"

// RedisOption RedisStore 可选配置
type RedisOption func(*RedisStore)

// WithKeyPrefix 设置 Redis 键前缀，默认为 "xlimit:sw:"
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// RedisStore 基于 Redis 有序集合的存储。
//
// 每个用户一个 ZSET，成员为随机 UUID，score 为微秒时间戳。
// 清理、计数和记录在同一个 Lua 脚本内完成，多进程并发访问同一用户时结果一致。
// 键设置了窗口长度的过期时间，长期不活跃的用户由 Redis 自动清除。
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore 创建 Redis 存储。client 为 nil 时返回 ErrNilClient。
// RedisStore 不负责关闭 client。
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) (*RedisStore, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	s := &RedisStore{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// WarmupScripts 将脚本预加载到 Redis 脚本缓存。可选调用。
func (s *RedisStore) WarmupScripts(ctx context.Context) error {
	if err := recordScript.Load(ctx, s.client).Err(); err != nil {
		return fmt.Errorf("load record script: %w", err)
	}
	if err := countScript.Load(ctx, s.client).Err(); err != nil {
		return fmt.Errorf("load count script: %w", err)
	}
	return nil
}

func (s *RedisStore) key(user string) string {
	return s.prefix + user
}

// micros 以十进制字符串传参，避免 Lua 数字格式化丢失精度
func micros(t time.Time) string {
	return strconv.FormatInt(t.UnixMicro(), 10)
}

// Count 实现 Store
func (s *RedisStore) Count(ctx context.Context, key string, now time.Time, window time.Duration) (int, time.Time, error) {
	res, err := s.run(ctx, countScript, key, micros(now.Add(-window)))
	if err != nil {
		return 0, time.Time{}, err
	}
	if res[0] == 0 {
		return 0, time.Time{}, nil
	}
	return int(res[0]), time.UnixMicro(res[1]), nil
}

// RecordIfAllowed 实现 Store
func (s *RedisStore) RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (bool, int, error) {
	ttl := max(window.Milliseconds(), 1)
	res, err := s.run(ctx, recordScript, key,
		micros(now),
		micros(now.Add(-window)),
		limit,
		uuid.NewString(),
		ttl,
	)
	if err != nil {
		return false, 0, err
	}
	return res[0] == 1, int(res[1]), nil
}

// Reset 实现 Store
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

// Type 实现 Store
func (s *RedisStore) Type() string {
	return StoreTypeRedis
}

func (s *RedisStore) run(ctx context.Context, script *redis.Script, key string, args ...any) ([2]int64, error) {
	var out [2]int64
	val, err := script.Run(ctx, s.client, []string{s.key(key)}, args...).Result()
	if err != nil {
		return out, err
	}
	res, err := convertScriptResult(val)
	if err != nil {
		return out, err
	}
	if len(res) != len(out) {
		return out, fmt.Errorf("%w: got %d elements, want %d", errUnexpectedScriptResult, len(res), len(out))
	}
	copy(out[:], res)
	return out, nil
}

// convertScriptResult 将 Lua 脚本返回值安全转换为 []int64
func convertScriptResult(val any) ([]int64, error) {
	arr, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected array, got %T", errUnexpectedScriptResult, val)
	}

	result := make([]int64, len(arr))
	for i, v := range arr {
		switch n := v.(type) {
		case int64:
			result[i] = n
		case int:
			result[i] = int64(n)
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("%w: element %d is non-integer float64 %g", errUnexpectedScriptResult, i, n)
			}
			result[i] = int64(n)
		default:
			return nil, fmt.Errorf("%w: element %d is %T, expected number", errUnexpectedScriptResult, i, v)
		}
	}
	return result, nil
}

package workload

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Kind 操作类型
type Kind uint8

const (
	// KindRange 区间和查询
	KindRange Kind = iota + 1

	// KindUpdate 单点更新
	KindUpdate
)

// String 返回操作类型名称
func (k Kind) String() string {
	switch k {
	case KindRange:
		return "range"
	case KindUpdate:
		return "update"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Op 单个操作。
// KindRange 使用 Left/Right；KindUpdate 使用 Index/Value。
type Op struct {
	Kind  Kind
	Left  int
	Right int
	Index int
	Value int64
}

// 配置校验错误
var (
	ErrInvalidSize        = errors.New("workload: size must be positive")
	ErrInvalidQueries     = errors.New("workload: queries must not be negative")
	ErrInvalidHotPool     = errors.New("workload: hot pool must be positive")
	ErrInvalidProbability = errors.New("workload: probability must be within [0,1]")
	ErrInvalidValueRange  = errors.New("workload: min value greater than max value")
)

// Config 生成参数
type Config struct {
	// Size 数组长度 N
	Size int `koanf:"size"`

	// Queries 操作总数 Q（查询与更新之和）
	Queries int `koanf:"queries"`

	// HotPool 热点区间数量
	HotPool int `koanf:"hot_pool"`

	// HotProb 查询命中热点池的概率
	HotProb float64 `koanf:"hot_prob"`

	// UpdateProb 操作为更新的概率
	UpdateProb float64 `koanf:"update_prob"`

	// MinValue、MaxValue 数组元素与更新值的闭区间
	MinValue int64 `koanf:"min_value"`
	MaxValue int64 `koanf:"max_value"`

	// Seed 随机种子
	Seed uint64 `koanf:"seed"`
}

// DefaultConfig 返回默认参数：N=100000，Q=50000，30 个热点区间，
// 95% 热点查询，3% 更新，元素取值 1..100，种子 42。
func DefaultConfig() Config {
	return Config{
		Size:       100_000,
		Queries:    50_000,
		HotPool:    30,
		HotProb:    0.95,
		UpdateProb: 0.03,
		MinValue:   1,
		MaxValue:   100,
		Seed:       42,
	}
}

// Validate 校验参数
func (c Config) Validate() error {
	var errs []error
	if c.Size <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidSize, c.Size))
	}
	if c.Queries < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidQueries, c.Queries))
	}
	if c.HotPool <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidHotPool, c.HotPool))
	}
	if !validProb(c.HotProb) {
		errs = append(errs, fmt.Errorf("%w: hot_prob=%v", ErrInvalidProbability, c.HotProb))
	}
	if !validProb(c.UpdateProb) {
		errs = append(errs, fmt.Errorf("%w: update_prob=%v", ErrInvalidProbability, c.UpdateProb))
	}
	if c.MinValue > c.MaxValue {
		errs = append(errs, fmt.Errorf("%w: %d > %d", ErrInvalidValueRange, c.MinValue, c.MaxValue))
	}
	return errors.Join(errs...)
}

// validProb 拒绝 NaN 和区间外的值
func validProb(p float64) bool {
	return p >= 0 && p <= 1
}

// Generator 确定性的操作生成器
type Generator struct {
	cfg   Config
	array []int64
	ops   []Op
}

// NewGenerator 按参数生成数组和操作序列。
//
// 数组先于操作生成，二者共用同一个以 Seed 初始化的 PCG 源。
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	g := &Generator{cfg: cfg}
	g.array = make([]int64, cfg.Size)
	for i := range g.array {
		g.array[i] = g.value(rng)
	}
	g.ops = g.generate(rng)
	return g, nil
}

// Array 返回基础数组的副本，调用方可以自由修改
func (g *Generator) Array() []int64 {
	return append([]int64(nil), g.array...)
}

// Ops 返回操作序列。序列只读，调用方不应修改。
func (g *Generator) Ops() []Op {
	return g.ops
}

// Config 返回生成参数
func (g *Generator) Config() Config {
	return g.cfg
}

func (g *Generator) generate(rng *rand.Rand) []Op {
	n := g.cfg.Size
	half := n / 2

	hot := make([]Op, g.cfg.HotPool)
	for i := range hot {
		hot[i] = Op{
			Kind:  KindRange,
			Left:  between(rng, 0, half),
			Right: between(rng, half, n-1),
		}
	}

	ops := make([]Op, 0, g.cfg.Queries)
	for range g.cfg.Queries {
		if rng.Float64() < g.cfg.UpdateProb {
			ops = append(ops, Op{
				Kind:  KindUpdate,
				Index: rng.IntN(n),
				Value: g.value(rng),
			})
			continue
		}
		if rng.Float64() < g.cfg.HotProb {
			ops = append(ops, hot[rng.IntN(len(hot))])
			continue
		}
		left := rng.IntN(n)
		ops = append(ops, Op{
			Kind:  KindRange,
			Left:  left,
			Right: between(rng, left, n-1),
		})
	}
	return ops
}

// value 返回 [MinValue, MaxValue] 内的均匀随机值
func (g *Generator) value(rng *rand.Rand) int64 {
	span := uint64(g.cfg.MaxValue - g.cfg.MinValue)
	if span == 0 {
		return g.cfg.MinValue
	}
	if span == ^uint64(0) {
		return int64(rng.Uint64())
	}
	return g.cfg.MinValue + int64(rng.Uint64N(span+1))
}

// between 返回 [lo, hi] 内的均匀随机整数，要求 lo <= hi
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// Count 统计序列中的查询数和更新数
func Count(ops []Op) (queries, updates int) {
	for _, op := range ops {
		if op.Kind == KindUpdate {
			updates++
		} else {
			queries++
		}
	}
	return queries, updates
}

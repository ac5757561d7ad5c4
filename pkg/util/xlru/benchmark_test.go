package xlru

import (
	"fmt"
	"testing"
)

// =============================================================================
// 基本操作基准测试
// =============================================================================

func BenchmarkCache_Get(b *testing.B) {
	cache, err := New[string, int](Config{Size: 1000})
	if err != nil {
		b.Fatal(err)
	}
	cache.Set("benchmark_key", 42)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_, _ = cache.Get("benchmark_key")
	}
}

func BenchmarkCache_Get_Miss(b *testing.B) {
	cache, err := New[string, int](Config{Size: 1000})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_, _ = cache.Get("nonexistent")
	}
}

func BenchmarkCache_Set_Evicting(b *testing.B) {
	cache, err := New[int, int](Config{Size: 1000})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		cache.Set(i, i)
	}
}

func BenchmarkCache_Keys(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			cache, err := New[int, int](Config{Size: size})
			if err != nil {
				b.Fatal(err)
			}
			for i := range size {
				cache.Set(i, i)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				_ = cache.Keys()
			}
		})
	}
}

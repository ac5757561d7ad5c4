package xlru

import (
	"errors"
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cache, err := New[string, int](Config{Size: 10})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if cache.Cap() != 10 {
			t.Errorf("cap = %d, expected 10", cache.Cap())
		}
	})

	t.Run("zero size", func(t *testing.T) {
		_, err := New[string, int](Config{Size: 0})
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("expected ErrInvalidSize, got %v", err)
		}
	})

	t.Run("negative size", func(t *testing.T) {
		_, err := New[string, int](Config{Size: -1})
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("expected ErrInvalidSize, got %v", err)
		}
	})

	t.Run("size exceeds max", func(t *testing.T) {
		_, err := New[string, int](Config{Size: maxSize + 1})
		if !errors.Is(err, ErrSizeExceedsMax) {
			t.Errorf("expected ErrSizeExceedsMax, got %v", err)
		}
	})

	t.Run("nil option ignored", func(t *testing.T) {
		cache, err := New[string, int](Config{Size: 1}, nil)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		cache.Set("a", 1)
	})
}

func TestCache_SetAndGet(t *testing.T) {
	cache, err := New[string, int](Config{Size: 10})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	t.Run("set and get", func(t *testing.T) {
		cache.Set("key1", 100)

		val, ok := cache.Get("key1")
		if !ok {
			t.Fatal("expected key to exist")
		}
		if val != 100 {
			t.Errorf("val = %d, expected 100", val)
		}
	})

	t.Run("get nonexistent", func(t *testing.T) {
		val, ok := cache.Get("nonexistent")
		if ok {
			t.Error("expected key to not exist")
		}
		if val != 0 {
			t.Errorf("val = %d, expected zero value", val)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		cache.Set("key2", 200)
		evicted := cache.Set("key2", 300)
		if evicted {
			t.Error("overwrite should not evict")
		}

		val, ok := cache.Get("key2")
		if !ok {
			t.Fatal("expected key to exist")
		}
		if val != 300 {
			t.Errorf("val = %d, expected 300", val)
		}
	})

	t.Run("sentinel-like values are cached", func(t *testing.T) {
		cache.Set("neg", -1)
		cache.Set("zero", 0)

		for key, want := range map[string]int{"neg": -1, "zero": 0} {
			val, ok := cache.Get(key)
			if !ok {
				t.Fatalf("%s: expected hit", key)
			}
			if val != want {
				t.Errorf("%s: val = %d, expected %d", key, val, want)
			}
		}
	})
}

func TestCache_Delete(t *testing.T) {
	cache, err := New[string, int](Config{Size: 10})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cache.Set("key1", 100)

	t.Run("delete existing", func(t *testing.T) {
		if !cache.Delete("key1") {
			t.Error("expected delete to return true")
		}
		if _, ok := cache.Get("key1"); ok {
			t.Error("key should not exist after delete")
		}
	})

	t.Run("delete nonexistent", func(t *testing.T) {
		if cache.Delete("nonexistent") {
			t.Error("expected delete to return false for nonexistent key")
		}
	})
}

func TestCache_Clear(t *testing.T) {
	cache, err := New[string, int](Config{Size: 10})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cache.Set("key1", 100)
	cache.Set("key2", 200)
	cache.Set("key3", 300)
	cache.Clear()

	if cache.Len() != 0 {
		t.Errorf("len = %d, expected 0 after clear", cache.Len())
	}
	if _, ok := cache.Get("key1"); ok {
		t.Error("key1 should not exist after clear")
	}
}

// 容量 2，依次插入 A、B、C，淘汰 A。
func TestCache_LRUEviction(t *testing.T) {
	cache, err := New[string, int](Config{Size: 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cache.Set("A", 1)
	cache.Set("B", 2)
	if evicted := cache.Set("C", 3); !evicted {
		t.Error("expected eviction when inserting third key")
	}

	if cache.Contains("A") {
		t.Error("A should be evicted")
	}
	if !cache.Contains("B") || !cache.Contains("C") {
		t.Error("B and C should remain")
	}
}

// 插入 B 之后、插入 C 之前访问 A，淘汰 B。
func TestCache_LRUEviction_GetPromotes(t *testing.T) {
	cache, err := New[string, int](Config{Size: 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cache.Set("A", 1)
	cache.Set("B", 2)
	if _, ok := cache.Get("A"); !ok {
		t.Fatal("A should exist")
	}
	cache.Set("C", 3)

	if cache.Contains("B") {
		t.Error("B should be evicted")
	}
	if !cache.Contains("A") || !cache.Contains("C") {
		t.Error("A and C should remain")
	}
}

func TestCache_SetExistingPromotes(t *testing.T) {
	cache, err := New[string, int](Config{Size: 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cache.Set("A", 1)
	cache.Set("B", 2)
	cache.Set("A", 10)
	cache.Set("C", 3)

	if cache.Contains("B") {
		t.Error("B should be evicted after A was refreshed")
	}
	if v, _ := cache.Peek("A"); v != 10 {
		t.Errorf("A = %d, expected 10", v)
	}
}

func TestCache_PeekDoesNotPromote(t *testing.T) {
	cache, err := New[string, int](Config{Size: 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cache.Set("A", 1)
	cache.Set("B", 2)
	if _, ok := cache.Peek("A"); !ok {
		t.Fatal("A should exist")
	}
	if !cache.Contains("A") {
		t.Fatal("A should exist")
	}
	cache.Set("C", 3)

	if cache.Contains("A") {
		t.Error("A should be evicted: Peek/Contains must not promote")
	}
}

func TestCache_CapacityBound(t *testing.T) {
	const size = 8
	cache, err := New[int, int](Config{Size: size})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	evictions := 0
	for i := range 100 {
		if cache.Set(i, i) {
			evictions++
		}
		if cache.Len() > size {
			t.Fatalf("len = %d exceeds cap %d", cache.Len(), size)
		}
	}
	if evictions != 100-size {
		t.Errorf("evictions = %d, expected %d", evictions, 100-size)
	}
}

func TestCache_Keys(t *testing.T) {
	cache, err := New[string, int](Config{Size: 10})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cache.Set("key1", 100)
	cache.Set("key2", 200)
	cache.Set("key3", 300)
	cache.Get("key1")

	keys := cache.Keys()
	want := []string{"key2", "key3", "key1"}
	if !slices.Equal(keys, want) {
		t.Errorf("keys = %v, expected %v (oldest to newest)", keys, want)
	}
}

func TestCache_KeysSnapshotSafeForDelete(t *testing.T) {
	cache, err := New[int, int](Config{Size: 16})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := range 16 {
		cache.Set(i, i)
	}

	for _, k := range cache.Keys() {
		if k%2 == 0 {
			cache.Delete(k)
		}
	}

	if cache.Len() != 8 {
		t.Fatalf("len = %d, expected 8", cache.Len())
	}
	for _, k := range cache.Keys() {
		if k%2 == 0 {
			t.Errorf("even key %d should have been deleted", k)
		}
	}
}

func TestCache_OnEvicted(t *testing.T) {
	var evicted []string
	cache, err := New(Config{Size: 2},
		WithOnEvicted(func(key string, _ int) {
			evicted = append(evicted, key)
		}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Set("c", 3)
	cache.Delete("b")

	want := []string{"a", "b"}
	if !slices.Equal(evicted, want) {
		t.Errorf("evicted = %v, expected %v", evicted, want)
	}
}

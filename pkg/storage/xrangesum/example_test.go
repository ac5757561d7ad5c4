package xrangesum_test

import (
	"errors"
	"fmt"

	"github.com/omeyang/rangekit/pkg/storage/xrangesum"
)

func Example() {
	data := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	cache, err := xrangesum.New(data, 3)
	if err != nil {
		panic(err)
	}

	a, _ := cache.Query(0, 4)
	b, _ := cache.Query(5, 9)
	fmt.Println(a, b)

	// 下标 7 落在 [5,9] 内，该区间被失效；[0,4] 保持缓存
	if err := cache.Update(7, 100); err != nil {
		panic(err)
	}
	b, _ = cache.Query(5, 9)
	a, _ = cache.Query(0, 4)
	fmt.Println(a, b)

	st := cache.Stats()
	fmt.Printf("hits=%d misses=%d invalidations=%d\n", st.Hits, st.Misses, st.Invalidations)

	// Output:
	// 15 40
	// 15 132
	// hits=1 misses=3 invalidations=1
}

func ExampleCache_Query_outOfRange() {
	cache, err := xrangesum.New([]int64{1, 2, 3}, 1)
	if err != nil {
		panic(err)
	}

	_, err = cache.Query(2, 1)
	fmt.Println(errors.Is(err, xrangesum.ErrIndexOutOfRange))

	// Output:
	// true
}

func ExampleNewDirect() {
	var s xrangesum.Summer = xrangesum.NewDirect([]int64{4, -2, 7})
	sum, _ := s.Query(0, 2)
	fmt.Println(sum)

	// Output:
	// 9
}

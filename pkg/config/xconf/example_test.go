package xconf_test

import (
	"fmt"

	"github.com/omeyang/rangekit/pkg/config/xconf"
)

// ExampleNewFromBytes 演示从字节数据加载配置并反序列化。
func ExampleNewFromBytes() {
	data := []byte(`
run:
  capacity: 1000
  queries: 50000
`)
	cfg, err := xconf.NewFromBytes(data, xconf.FormatYAML)
	if err != nil {
		fmt.Println(err)
		return
	}

	var run struct {
		Capacity int `koanf:"capacity"`
		Queries  int `koanf:"queries"`
		Size     int `koanf:"size"`
	}
	run.Size = 100000 // 默认值，配置缺失时保留
	if err := cfg.Unmarshal("run", &run); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(run.Capacity, run.Queries, run.Size)

	// Output:
	// 1000 50000 100000
}

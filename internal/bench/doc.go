// Package bench 回放操作序列并对比缓存路径与直接计算路径。
//
// 每条路径在基础数组的独立副本上运行。所有查询结果按顺序写入 xxhash64 摘要，
// 两条路径的摘要不同说明缓存返回了过期结果，[Runner.Compare] 返回 ErrChecksumMismatch。
package bench

//go:generate mockgen -destination=mock_summer_test.go -package=bench github.com/omeyang/rangekit/pkg/storage/xrangesum Summer

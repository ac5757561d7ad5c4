// Package workload 生成区间和基准测试使用的操作序列。
//
// 序列由区间查询和单点更新混合组成：
//   - 以 UpdateProb 的概率生成更新，下标和值均匀分布
//   - 其余为查询，以 HotProb 的概率从热点池中选取，否则随机生成
//
// 热点区间的左端落在 [0, N/2]，右端落在 [N/2, N-1]，因此都是长区间，
// 缓存命中带来的收益明显。
//
// 相同 Config（包括 Seed）总是生成相同的数组和操作序列。
package workload

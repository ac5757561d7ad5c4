// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xlru: 泛型 LRU 缓存，容量淘汰与按访问顺序遍历
package util

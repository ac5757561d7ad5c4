// Package xconf 提供配置文件的加载和反序列化，基于 koanf 实现。
//
// xconf 只负责加载与反序列化，不负责必选字段校验或环境变量覆盖。
// 默认值由调用方在 Unmarshal 之前填入目标结构体：
// 配置中缺失的键不会覆盖已有字段。
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
//
// # 用法
//
//	cfg := workload.DefaultConfig()
//	if err := xconf.Load(path, "workload", &cfg); err != nil {
//		return err
//	}
//
// Unmarshal 使用 mapstructure，允许弱类型转换（字符串 "8080" 可转为 int），
// 时长字段接受 "10s" 形式，实现 encoding.TextUnmarshaler 的字段按文本解码。
//
// WithStrict 开启严格模式，配置中存在目标结构体没有的键时返回 ErrUnmarshalFailed。
// 取值范围等业务校验仍由调用方在 Unmarshal 后完成。
package xconf

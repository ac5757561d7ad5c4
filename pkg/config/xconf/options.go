package xconf

// 键分隔符与结构体标签固定，与各包配置结构体上的 koanf 标签一致
const (
	keyDelim = "."
	tagName  = "koanf"
)

// options 配置加载选项
type options struct {
	strict bool
}

// Option 定义配置选项函数类型。
type Option func(*options)

// WithStrict 开启严格模式：配置中出现目标结构体没有的键时，Unmarshal 返回
// ErrUnmarshalFailed。用于发现配置文件中的拼写错误，如把 capacity 写成 capcity。
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

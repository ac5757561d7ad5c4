package xlimit

import "errors"

// 预定义错误，使用 errors.Is 进行比较
var (
	// ErrNilStore 表示未提供存储
	ErrNilStore = errors.New("xlimit: nil store")

	// ErrNilClient 表示 Redis 客户端为 nil
	ErrNilClient = errors.New("xlimit: nil redis client")

	// ErrInvalidWindow 表示窗口长度无效（必须为正数）
	ErrInvalidWindow = errors.New("xlimit: invalid window")

	// ErrInvalidLimit 表示最大请求数无效（必须为正数）
	ErrInvalidLimit = errors.New("xlimit: invalid max requests")

	// ErrEmptyUser 表示用户标识为空
	ErrEmptyUser = errors.New("xlimit: empty user id")

	// errUnexpectedScriptResult Lua 脚本返回结果不符合预期
	errUnexpectedScriptResult = errors.New("xlimit: unexpected script result")
)

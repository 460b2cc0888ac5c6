package code

import "sync"

// code 维护业务错误码注册表
// 各模块在 types/errno 的 init() 中注册自己的错误码与默认文案

type Option func(*Definition)

// Definition 一个已注册的错误码
type Definition struct {
	Code            int32
	Message         string
	AffectStability bool // 为true时说明依赖的基础设施不可用, HTTP层映射为503
}

var (
	mu    sync.RWMutex
	codes = map[int32]*Definition{}
)

// WithAffectStability 标记该错误是否影响服务稳定性
func WithAffectStability(affect bool) Option {
	return func(d *Definition) {
		d.AffectStability = affect
	}
}

// Register 注册错误码, 重复注册时后注册的生效
func Register(code int32, msg string, opts ...Option) {
	d := &Definition{Code: code, Message: msg}
	for _, opt := range opts {
		opt(d)
	}
	mu.Lock()
	codes[code] = d
	mu.Unlock()
}

// Find 查找错误码定义, 未注册返回nil
func Find(code int32) *Definition {
	mu.RLock()
	defer mu.RUnlock()
	return codes[code]
}

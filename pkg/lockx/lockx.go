package lockx

import "sync"

// KeyedMutex 按key互斥
// 用于串行化同一对话上的并发轮次, 避免消息落库次序交错
// 仅进程内有效, 跨实例的串行化需要依赖存储层的版本检查
type KeyedMutex struct {
	mus sync.Map // key -> *sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{}
}

// Lock 锁定key, 返回解锁函数
func (m *KeyedMutex) Lock(key string) (unlock func()) {
	v, _ := m.mus.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

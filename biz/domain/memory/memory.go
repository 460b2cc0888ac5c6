package memory

import "time"

// Memory 规范化后的一条长期记忆
// 后端存储吐出的原始形状只在本包内出现, 调用方只见这个结构
type Memory struct {
	MemoryId       string
	Content        string
	RelevanceScore float64 // [0,1], 恒为越大越相关
	Category       string
	Metadata       map[string]any
	CreateTime     time.Time
	UpdateTime     time.Time
}

package memstore

import (
	"context"

	"github.com/xh-polaris/advisor-core-api/biz/infra/config"
)

// Store 原始记忆存储边界
// 读路径返回的记录形状不受本系统控制, 可能随后端版本变化,
// 统一交由domain层的归一化器处理, 调用方不直接消费raw
type Store interface {
	// Add 提交一段文本, 后端自行决定是否沉淀为记忆
	// 返回值形状不定: 对象/字符串/列表均有可能
	Add(ctx context.Context, uid, text string, metadata map[string]any) (raw any, err error)
	// Search 相似度搜索, 返回原始记录列表或带外层包装的对象
	Search(ctx context.Context, uid, query string, limit int) (raw any, err error)
	// List 列出用户记忆
	List(ctx context.Context, uid string, limit int) (raw any, err error)
	// Get 按id取单条原始记录, 不存在时返回nil
	Get(ctx context.Context, id string) (raw map[string]any, err error)
	// Update 更新记忆文本与元数据
	Update(ctx context.Context, id, text string, metadata map[string]any) (raw map[string]any, err error)
	// Delete 删除记忆
	Delete(ctx context.Context, id, uid string) error
}

// NewStore 依据配置选择后端
func NewStore(c *config.Config) (Store, error) {
	if c.Memory.Provider == "chromem" {
		return NewChromemStore(c)
	}
	return NewMem0Store(c), nil
}

package memory

import (
	"context"
	"strings"

	"github.com/xh-polaris/advisor-core-api/biz/infra/config"
	"github.com/xh-polaris/advisor-core-api/biz/infra/cst"
	"github.com/xh-polaris/advisor-core-api/biz/infra/memstore"
	"github.com/xh-polaris/advisor-core-api/pkg/errorx"
	"github.com/xh-polaris/advisor-core-api/pkg/logs"
)

// MemoryDomain 把尽力而为的后端记忆存储包成一个小而可靠的门面
// 读路径全部过归一化器; 检索失败对调用方表现为"没有记忆", 不上抛
type MemoryDomain struct {
	store memstore.Store
	topK  int
}

func NewMemoryDomain(c *config.Config, store memstore.Store) *MemoryDomain {
	return &MemoryDomain{store: store, topK: c.Memory.TopK}
}

func (d *MemoryDomain) TopK() int {
	return d.topK
}

// minExtractLen 低于该长度的消息不可能承载偏好, 跳过抽取
const minExtractLen = 3

// AddFromMessage 从一条用户消息中抽取记忆
// 返回空id表示后端判定消息没有可沉淀的内容, 这不是错误
func (d *MemoryDomain) AddFromMessage(ctx context.Context, uid, text string, meta map[string]any) (memoryId string, err error) {
	if len([]rune(strings.TrimSpace(text))) < minExtractLen {
		return "", nil
	}

	if meta == nil {
		meta = map[string]any{}
	}
	meta[cst.MetaSource] = "user_message"
	meta[cst.MetaUserId] = uid

	raw, err := d.store.Add(ctx, uid, text, meta)
	if err != nil {
		return "", err
	}
	return extractMemoryId(raw), nil
}

// extractMemoryId 在几种历史形状中找记忆id:
// 带id字段的对象 / 裸字符串 / 列表取第一个元素(前两种形状之一)
// 对象带results包装时先拆包
func extractMemoryId(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case map[string]any:
		for _, k := range []string{"id", "memory_id"} {
			if s, ok := v[k].(string); ok && s != "" {
				return s
			}
		}
		if inner, ok := v["results"]; ok {
			return extractMemoryId(inner)
		}
	case []any:
		if len(v) > 0 {
			return extractMemoryId(v[0])
		}
	}
	return ""
}

// Search 相似度检索并归一化, 任何失败都降级为空结果
func (d *MemoryDomain) Search(ctx context.Context, uid, query string, topK int) []*Memory {
	if topK <= 0 {
		topK = d.topK
	}
	raw, err := d.store.Search(ctx, uid, query, topK)
	if err != nil {
		logs.CtxErrorf(ctx, "[memory adapter] search degraded, err:%s", errorx.ErrorWithoutStack(err))
		return []*Memory{}
	}

	records := unwrapRecords(raw)
	out := make([]*Memory, 0, len(records))
	dropped := 0
	for i, rec := range records {
		m, ok := Normalize(rec, i)
		if !ok {
			dropped++
			continue
		}
		if isBoilerplate(m.Content) {
			dropped++
			continue
		}
		out = append(out, m)
	}
	logs.CondErrorf(dropped > 0, "[memory adapter] search dropped %d unusable records for uid=%s", dropped, uid)
	return out
}

// List 列出用户记忆, 类别过滤在截断前生效
func (d *MemoryDomain) List(ctx context.Context, uid string, limit int64, category string) ([]*Memory, error) {
	raw, err := d.store.List(ctx, uid, int(limit))
	if err != nil {
		return nil, err
	}

	out := make([]*Memory, 0)
	for i, rec := range unwrapRecords(raw) {
		m, ok := Normalize(rec, i)
		if !ok {
			continue
		}
		if category != "" && m.Category != category {
			continue
		}
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		out = append(out, m)
	}
	return out, nil
}

// Get 按id取一条, 不存在返回nil
func (d *MemoryDomain) Get(ctx context.Context, id string) (*Memory, error) {
	raw, err := d.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	m, ok := Normalize(map[string]any(raw), 0)
	if !ok {
		return nil, nil
	}
	return m, nil
}

// Update 更新记忆内容与类别
func (d *MemoryDomain) Update(ctx context.Context, id, content, category string) (*Memory, error) {
	var meta map[string]any
	if category != "" {
		meta = map[string]any{cst.MetaCategory: category}
	}
	raw, err := d.store.Update(ctx, id, content, meta)
	if err != nil {
		return nil, err
	}
	if m, ok := Normalize(map[string]any(raw), 0); ok {
		return m, nil
	}
	// 部分后端更新时只回执不回全量记录
	return &Memory{MemoryId: id, Content: content, Category: category, RelevanceScore: 0.5}, nil
}

// Delete 删除一条记忆
// false只表示没删成, 鉴权语义由调用方自行判断
func (d *MemoryDomain) Delete(ctx context.Context, id, uid string) bool {
	if err := d.store.Delete(ctx, id, uid); err != nil {
		logs.CtxErrorf(ctx, "[memory adapter] delete %s err:%s", id, errorx.ErrorWithoutStack(err))
		return false
	}
	return true
}

// BatchDelete 按类别批量删除, list-then-delete, 尽力而为不回滚
// 单条失败只计数不中断
func (d *MemoryDomain) BatchDelete(ctx context.Context, uid, category string) (deleted int64) {
	ms, err := d.List(ctx, uid, 0, category)
	if err != nil {
		logs.CtxErrorf(ctx, "[memory adapter] batch delete list err:%s", errorx.ErrorWithoutStack(err))
		return 0
	}

	failed := 0
	for _, m := range ms {
		if d.Delete(ctx, m.MemoryId, uid) {
			deleted++
		} else {
			failed++
		}
	}
	logs.CondErrorf(failed > 0, "[memory adapter] batch delete uid=%s: %d deleted, %d failed", uid, deleted, failed)
	return deleted
}

// unwrapRecords 拆掉可能的外层包装拿到记录列表
func unwrapRecords(raw any) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case map[string]any:
		for _, k := range []string{"results", "memories", "data"} {
			if inner, ok := v[k].([]any); ok {
				return inner
			}
		}
	}
	return nil
}

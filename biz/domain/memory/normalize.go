package memory

import (
	"fmt"
	"strings"
	"time"
)

// 归一化器: 把后端吐出的任意形状记录转成规范Memory
// 纯函数, 不可识别的记录丢弃并计数, 从不报错

// contentKeys 内容字段的严格优先级, 先命中者生效
var contentKeys = []string{"memory", "document", "content", "text", "data"}

// scoreKeys 原始得分可能的字段名
var scoreKeys = []string{"score", "relevance", "similarity", "distance"}

// Normalize 规范化一条原始记录
// index是该记录在结果集中的位置, 仅用作兜底id和无得分时的位置默认相关度
// 返回false表示记录被拒绝, 不应进入结果集
func Normalize(raw any, index int) (*Memory, bool) {
	rec, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}

	content := extractContent(rec)
	if content == "" {
		// 无内容的记录直接拒绝, 而不是带空内容输出
		return nil, false
	}

	m := &Memory{
		MemoryId:       extractId(rec, index),
		Content:        content,
		RelevanceScore: normalizeScore(rec, index),
		Metadata:       extractMetadata(rec),
	}
	if c, ok := m.Metadata["category"].(string); ok {
		m.Category = c
	} else if c, ok := rec["category"].(string); ok {
		m.Category = c
	}
	m.CreateTime = extractTime(rec, m.Metadata, "created_at")
	m.UpdateTime = extractTime(rec, m.Metadata, "updated_at")
	return m, true
}

// extractContent 逐个尝试内容字段, 最后兜底metadata.data
func extractContent(rec map[string]any) string {
	for _, k := range contentKeys {
		if s, ok := rec[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	if meta, ok := rec["metadata"].(map[string]any); ok {
		if s, ok := meta["data"].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func extractId(rec map[string]any, index int) string {
	for _, k := range []string{"id", "memory_id", "_id"} {
		switch v := rec[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case fmt.Stringer:
			return v.String()
		}
	}
	// 位置作为确定性的兜底id
	return fmt.Sprintf("mem_%d", index)
}

// normalizeScore 统一到[0,1]且越大越相关
// 原始得分>1按距离处理(越小越近), 取1/(1+s); 得分为0给中性默认0.5;
// 完全没有得分字段时按位置给出递减默认, 保持结果原有顺序
func normalizeScore(rec map[string]any, index int) float64 {
	raw, found := extractScore(rec)
	if !found {
		return 1.0 - float64(index)*0.15
	}
	switch {
	case raw > 1.0:
		return 1.0 / (1.0 + raw)
	case raw <= 0:
		return 0.5
	default:
		return raw
	}
}

func extractScore(rec map[string]any) (float64, bool) {
	for _, k := range scoreKeys {
		if v, ok := rec[k]; ok {
			if f, ok := toFloat(v); ok {
				return f, true
			}
		}
	}
	if meta, ok := rec["metadata"].(map[string]any); ok {
		if v, ok := meta["relevance"]; ok {
			if f, ok := toFloat(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func extractMetadata(rec map[string]any) map[string]any {
	if meta, ok := rec["metadata"].(map[string]any); ok {
		return meta
	}
	return map[string]any{}
}

func extractTime(rec, meta map[string]any, key string) time.Time {
	for _, src := range []map[string]any{rec, meta} {
		if s, ok := src[key].(string); ok {
			for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
				if t, err := time.Parse(layout, s); err == nil {
					return t
				}
			}
		}
	}
	return time.Time{}
}

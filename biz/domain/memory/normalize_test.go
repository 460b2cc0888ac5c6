package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeContentPriority(t *testing.T) {
	// memory字段优先于document和content
	m, ok := Normalize(map[string]any{
		"memory":   "喜欢低风险投资",
		"document": "doc内容",
		"content":  "content内容",
	}, 0)
	require.True(t, ok)
	assert.Equal(t, "喜欢低风险投资", m.Content)

	// memory缺失时退到document
	m, ok = Normalize(map[string]any{"document": "doc内容", "text": "text内容"}, 0)
	require.True(t, ok)
	assert.Equal(t, "doc内容", m.Content)

	// 顶级字段都缺失时退到metadata.data
	m, ok = Normalize(map[string]any{"metadata": map[string]any{"data": "嵌套内容"}}, 0)
	require.True(t, ok)
	assert.Equal(t, "嵌套内容", m.Content)
}

func TestNormalizeRejectsEmptyContent(t *testing.T) {
	_, ok := Normalize(map[string]any{"memory": "   "}, 0)
	assert.False(t, ok)

	_, ok = Normalize(map[string]any{"id": "m1"}, 0)
	assert.False(t, ok)

	_, ok = Normalize("不是对象", 0)
	assert.False(t, ok)
}

func TestNormalizeScore(t *testing.T) {
	cases := []struct {
		name string
		rec  map[string]any
		idx  int
		want float64
	}{
		{"正常得分原样保留", map[string]any{"memory": "a", "score": 0.95}, 0, 0.95},
		{"距离型得分取倒数", map[string]any{"memory": "a", "score": 3.0}, 0, 0.25},
		{"得分为零给中性默认", map[string]any{"memory": "a", "score": 0.0}, 0, 0.5},
		{"负得分给中性默认", map[string]any{"memory": "a", "relevance": -1.0}, 0, 0.5},
		{"无得分按位置递减_首位", map[string]any{"memory": "a"}, 0, 1.0},
		{"无得分按位置递减_第三位", map[string]any{"memory": "a"}, 2, 0.7},
		{"distance字段同样识别", map[string]any{"memory": "a", "distance": 4.0}, 0, 0.2},
		{"metadata内的relevance兜底", map[string]any{"memory": "a", "metadata": map[string]any{"relevance": 0.8}}, 0, 0.8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, ok := Normalize(c.rec, c.idx)
			require.True(t, ok)
			assert.InDelta(t, c.want, m.RelevanceScore, 1e-9)
		})
	}
}

func TestNormalizeId(t *testing.T) {
	m, ok := Normalize(map[string]any{"memory": "a", "memory_id": "abc"}, 3)
	require.True(t, ok)
	assert.Equal(t, "abc", m.MemoryId)

	// 无id时用位置生成确定性id
	m, ok = Normalize(map[string]any{"memory": "a"}, 3)
	require.True(t, ok)
	assert.Equal(t, "mem_3", m.MemoryId)
}

func TestNormalizeTime(t *testing.T) {
	m, ok := Normalize(map[string]any{
		"memory":     "a",
		"created_at": "2026-08-01T10:00:00Z",
		"metadata":   map[string]any{"updated_at": "2026-08-02 08:30:00"},
	}, 0)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), m.CreateTime)
	assert.Equal(t, time.Date(2026, 8, 2, 8, 30, 0, 0, time.UTC), m.UpdateTime)
}

func TestIsBoilerplate(t *testing.T) {
	assert.True(t, isBoilerplate("User is asking about stock prices"))
	assert.True(t, isBoilerplate("用戶正在詢問投資建議"))
	assert.False(t, isBoilerplate("喜欢低风险的指数基金"))
}

package memstore

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedEmbedder 返回固定向量, 测试不依赖外部嵌入服务
type fixedEmbedder struct{}

func (fixedEmbedder) EmbedStrings(_ context.Context, texts []string, _ ...embedding.Option) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{0.6, 0.8}
	}
	return out, nil
}

func TestChromemIndexSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	uid := "u1"

	s1, err := newChromemStore(dir, fixedEmbedder{})
	require.NoError(t, err)

	raw, err := s1.Add(ctx, uid, "偏好低風險投資", nil)
	require.NoError(t, err)
	id := raw.(map[string]any)["id"].(string)

	// 重开模拟进程重启, 管理面仍能看到重启前的记忆
	s2, err := newChromemStore(dir, fixedEmbedder{})
	require.NoError(t, err)

	listed, err := s2.List(ctx, uid, 0)
	require.NoError(t, err)
	require.Len(t, listed.([]any), 1)

	got, err := s2.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "偏好低風險投資", got["document"])

	// 删除同样跨重启生效
	require.NoError(t, s2.Delete(ctx, id, uid))

	s3, err := newChromemStore(dir, fixedEmbedder{})
	require.NoError(t, err)
	listed, err = s3.List(ctx, uid, 0)
	require.NoError(t, err)
	assert.Empty(t, listed.([]any))
}

package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xh-polaris/advisor-core-api/biz/infra/config"
)

// fakeStore 可编程的存储桩
type fakeStore struct {
	addRaw    any
	addErr    error
	addCalled bool
	searchRaw any
	searchErr error
	listRaw   any
	listErr   error
	getRaw    map[string]any
	updateRaw map[string]any
	deleteErr error
	deleted   []string
}

func (f *fakeStore) Add(_ context.Context, _, _ string, _ map[string]any) (any, error) {
	f.addCalled = true
	return f.addRaw, f.addErr
}
func (f *fakeStore) Search(_ context.Context, _, _ string, _ int) (any, error) {
	return f.searchRaw, f.searchErr
}
func (f *fakeStore) List(_ context.Context, _ string, _ int) (any, error) {
	return f.listRaw, f.listErr
}
func (f *fakeStore) Get(_ context.Context, _ string) (map[string]any, error) {
	return f.getRaw, nil
}
func (f *fakeStore) Update(_ context.Context, _, _ string, _ map[string]any) (map[string]any, error) {
	return f.updateRaw, nil
}
func (f *fakeStore) Delete(_ context.Context, id, _ string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestDomain(store *fakeStore) *MemoryDomain {
	c := &config.Config{}
	c.Memory.TopK = 5
	return NewMemoryDomain(c, store)
}

func TestAddFromMessageSkipsShortText(t *testing.T) {
	store := &fakeStore{}
	d := newTestDomain(store)

	id, err := d.AddFromMessage(context.Background(), "u1", "  hi ", nil)
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.False(t, store.addCalled, "过短消息不应触达后端")
}

func TestAddFromMessageIdShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want string
	}{
		{"对象带id", map[string]any{"id": "m1", "memory": "x"}, "m1"},
		{"裸字符串", "m2", "m2"},
		{"列表取首个", []any{map[string]any{"id": "m3"}}, "m3"},
		{"results包装", map[string]any{"results": []any{map[string]any{"id": "m4"}}}, "m4"},
		{"空列表视为未沉淀", []any{}, ""},
		{"nil视为未沉淀", nil, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := newTestDomain(&fakeStore{addRaw: c.raw})
			id, err := d.AddFromMessage(context.Background(), "u1", "我偏好定期定額投資", nil)
			require.NoError(t, err)
			assert.Equal(t, c.want, id)
		})
	}
}

func TestSearchDegradesToEmpty(t *testing.T) {
	d := newTestDomain(&fakeStore{searchErr: errors.New("connection refused")})
	got := d.Search(context.Background(), "u1", "风险偏好", 5)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchNormalizesAndFilters(t *testing.T) {
	d := newTestDomain(&fakeStore{searchRaw: map[string]any{"results": []any{
		map[string]any{"id": "m1", "memory": "looking for stock tips", "score": 0.95},
		map[string]any{"id": "m2", "memory": "持有大量債券", "score": 0.80},
		map[string]any{"id": "m3", "score": 0.70}, // 无内容
		map[string]any{"id": "m4", "document": "偏好長期投資", "score": 2.0},
	}}})

	got := d.Search(context.Background(), "u1", "q", 5)
	require.Len(t, got, 2)
	// 高分的套话记录被过滤, 不影响其余记录
	assert.Equal(t, "m2", got[0].MemoryId)
	assert.InDelta(t, 0.80, got[0].RelevanceScore, 1e-9)
	assert.Equal(t, "m4", got[1].MemoryId)
	assert.InDelta(t, 1.0/3.0, got[1].RelevanceScore, 1e-9)
}

func TestListCategoryFilterBeforeLimit(t *testing.T) {
	d := newTestDomain(&fakeStore{listRaw: []any{
		map[string]any{"id": "m1", "memory": "a", "category": "risk"},
		map[string]any{"id": "m2", "memory": "b", "category": "goal"},
		map[string]any{"id": "m3", "memory": "c", "category": "risk"},
	}})

	got, err := d.List(context.Background(), "u1", 2, "risk")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].MemoryId)
	assert.Equal(t, "m3", got[1].MemoryId)
}

func TestGetMissingReturnsNil(t *testing.T) {
	d := newTestDomain(&fakeStore{getRaw: nil})
	m, err := d.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestDeleteReportsFailure(t *testing.T) {
	d := newTestDomain(&fakeStore{deleteErr: errors.New("boom")})
	assert.False(t, d.Delete(context.Background(), "m1", "u1"))
}

func TestBatchDelete(t *testing.T) {
	store := &fakeStore{listRaw: []any{
		map[string]any{"id": "m1", "memory": "a", "category": "risk"},
		map[string]any{"id": "m2", "memory": "b", "category": "risk"},
	}}
	d := newTestDomain(store)

	deleted := d.BatchDelete(context.Background(), "u1", "risk")
	assert.Equal(t, int64(2), deleted)
	assert.Equal(t, []string{"m1", "m2"}, store.deleted)
}

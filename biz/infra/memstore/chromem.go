package memstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino-ext/components/embedding/openai"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"
	"github.com/xh-polaris/advisor-core-api/biz/infra/config"
	"github.com/xh-polaris/advisor-core-api/biz/infra/cst"
	"github.com/xh-polaris/advisor-core-api/pkg/errorx"
	"github.com/xh-polaris/advisor-core-api/pkg/logs"
)

var _ Store = (*ChromemStore)(nil)

// ChromemStore 内嵌向量库实现, 不依赖外部记忆服务
// 语义检索交给chromem-go, 嵌入走openai兼容接口
// chromem没有按用户列举文档的API, 这里维护一份uid->ids索引,
// 随库落盘在sidecar文件中, 重启后恢复
type ChromemStore struct {
	db        *chromem.DB
	embedder  embedding.Embedder
	indexPath string
	mu        sync.RWMutex
	byUser    map[string][]string
}

func NewChromemStore(c *config.Config) (*ChromemStore, error) {
	emb, err := openai.NewEmbedder(context.Background(), &openai.EmbeddingConfig{
		APIKey:  c.Memory.EmbedderAPIKey,
		BaseURL: c.Memory.EmbedderURL,
		Model:   c.Memory.EmbedderModel,
	})
	if err != nil {
		return nil, err
	}
	return newChromemStore(c.Memory.Path, emb)
}

// newChromemStore 打开持久化库并恢复索引
// chromem加载时会跳过库目录下的普通文件, sidecar放在库目录内不冲突
func newChromemStore(path string, emb embedding.Embedder) (*ChromemStore, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, err
	}
	s := &ChromemStore{
		db:        db,
		embedder:  emb,
		indexPath: filepath.Join(path, "user_index.json"),
		byUser:    map[string][]string{},
	}
	if err = s.loadIndex(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ChromemStore) loadIndex() error {
	buf, err := os.ReadFile(s.indexPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return sonic.Unmarshal(buf, &s.byUser)
}

// persistIndex 全量重写sidecar; 写失败只记日志, 下一次变更会再写
func (s *ChromemStore) persistIndex() {
	s.mu.RLock()
	buf, err := sonic.Marshal(s.byUser)
	s.mu.RUnlock()
	if err == nil {
		err = os.WriteFile(s.indexPath, buf, 0o644)
	}
	if err != nil {
		logs.Errorf("[chromem store] persist index err:%s", err)
	}
}

// embed 适配chromem的EmbeddingFunc
func (s *ChromemStore) embed(ctx context.Context, text string) ([]float32, error) {
	vs, err := s.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vs) == 0 {
		return nil, fmt.Errorf("embedder returned no vector")
	}
	v32 := make([]float32, len(vs[0]))
	for i, f := range vs[0] {
		v32[i] = float32(f)
	}
	return v32, nil
}

func (s *ChromemStore) collection(uid string) (*chromem.Collection, error) {
	name := "user_" + uid
	return s.db.GetOrCreateCollection(name, nil, s.embed)
}

func (s *ChromemStore) Add(ctx context.Context, uid, text string, metadata map[string]any) (raw any, err error) {
	col, err := s.collection(uid)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	meta := map[string]string{cst.MetaUserId: uid, "created_at": time.Now().Format(time.RFC3339)}
	for k, v := range metadata {
		meta[k] = fmt.Sprint(v)
	}
	if err = col.AddDocument(ctx, chromem.Document{ID: id, Content: text, Metadata: meta}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.byUser[uid] = append(s.byUser[uid], id)
	s.mu.Unlock()
	s.persistIndex()
	// 与mem0的对象形状对齐
	return map[string]any{"id": id, "memory": text}, nil
}

func (s *ChromemStore) Search(ctx context.Context, uid, query string, limit int) (raw any, err error) {
	col, err := s.collection(uid)
	if err != nil {
		return nil, err
	}
	if n := col.Count(); n < limit {
		limit = n
	}
	if limit == 0 {
		return []any{}, nil
	}
	results, err := col.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, err
	}

	// chroma风格的原始记录: document + 相似度
	out := make([]any, 0, len(results))
	for _, r := range results {
		out = append(out, map[string]any{
			"id":       r.ID,
			"document": r.Content,
			"score":    float64(r.Similarity),
			"metadata": stringMapToAny(r.Metadata),
		})
	}
	return out, nil
}

func (s *ChromemStore) List(ctx context.Context, uid string, limit int) (raw any, err error) {
	s.mu.RLock()
	ids := append([]string(nil), s.byUser[uid]...)
	s.mu.RUnlock()

	col, err := s.collection(uid)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		if limit > 0 && len(out) >= limit {
			break
		}
		doc, err := col.GetByID(ctx, id)
		if err != nil {
			logs.Errorf("[chromem store] get %s err:%s", id, errorx.ErrorWithoutStack(err))
			continue
		}
		out = append(out, map[string]any{"id": doc.ID, "document": doc.Content, "metadata": stringMapToAny(doc.Metadata)})
	}
	return out, nil
}

func (s *ChromemStore) Get(ctx context.Context, id string) (raw map[string]any, err error) {
	uid := s.ownerOf(id)
	if uid == "" {
		return nil, nil
	}
	col, err := s.collection(uid)
	if err != nil {
		return nil, err
	}
	doc, err := col.GetByID(ctx, id)
	if err != nil {
		return nil, nil
	}
	return map[string]any{"id": doc.ID, "document": doc.Content, "metadata": stringMapToAny(doc.Metadata)}, nil
}

func (s *ChromemStore) Update(ctx context.Context, id, text string, metadata map[string]any) (raw map[string]any, err error) {
	uid := s.ownerOf(id)
	if uid == "" {
		return nil, fmt.Errorf("memory %s not found", id)
	}
	col, err := s.collection(uid)
	if err != nil {
		return nil, err
	}
	doc, err := col.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	meta := doc.Metadata
	if meta == nil {
		meta = map[string]string{cst.MetaUserId: uid}
	}
	for k, v := range metadata {
		meta[k] = fmt.Sprint(v)
	}
	meta["updated_at"] = time.Now().Format(time.RFC3339)
	// chromem无原地更新, 同id重写即覆盖
	if err = col.AddDocument(ctx, chromem.Document{ID: id, Content: text, Metadata: meta}); err != nil {
		return nil, err
	}
	return map[string]any{"id": id, "memory": text, "metadata": stringMapToAny(meta)}, nil
}

func (s *ChromemStore) Delete(ctx context.Context, id, uid string) error {
	if uid == "" {
		uid = s.ownerOf(id)
	}
	if uid == "" {
		return fmt.Errorf("memory %s not found", id)
	}
	col, err := s.collection(uid)
	if err != nil {
		return err
	}
	if err = col.Delete(ctx, nil, nil, id); err != nil {
		return err
	}

	s.mu.Lock()
	ids := s.byUser[uid]
	for i, v := range ids {
		if v == id {
			s.byUser[uid] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.persistIndex()
	return nil
}

// ownerOf 反查记忆归属的用户
func (s *ChromemStore) ownerOf(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for uid, ids := range s.byUser {
		for _, v := range ids {
			if v == id {
				return uid
			}
		}
	}
	return ""
}

func stringMapToAny(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

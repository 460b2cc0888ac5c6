package memstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/xh-polaris/advisor-core-api/biz/infra/config"
	"github.com/xh-polaris/advisor-core-api/biz/infra/util/httpx"
)

var _ Store = (*Mem0Store)(nil)

// Mem0Store 通过HTTP访问mem0兼容的记忆服务
// 服务端负责事实抽取/嵌入/向量检索, 这里只做协议转发
type Mem0Store struct {
	baseURL string
	apiKey  string
	cli     *httpx.HttpClient
}

func NewMem0Store(c *config.Config) *Mem0Store {
	return &Mem0Store{
		baseURL: c.Memory.BaseURL,
		apiKey:  c.Memory.APIKey,
		cli:     httpx.GetHttpClient(),
	}
}

func (s *Mem0Store) headers() http.Header {
	h := http.Header{"Content-Type": []string{"application/json"}}
	if s.apiKey != "" {
		h.Set("Authorization", "Token "+s.apiKey)
	}
	return h
}

func (s *Mem0Store) Add(ctx context.Context, uid, text string, metadata map[string]any) (raw any, err error) {
	body := map[string]any{
		"messages": []map[string]any{{"role": "user", "content": text}},
		"user_id":  uid,
		"metadata": metadata,
	}
	return httpx.Post[any](ctx, s.baseURL+"/v1/memories/", s.headers(), body)
}

func (s *Mem0Store) Search(ctx context.Context, uid, query string, limit int) (raw any, err error) {
	body := map[string]any{"query": query, "user_id": uid, "limit": limit}
	return httpx.Post[any](ctx, s.baseURL+"/v1/memories/search/", s.headers(), body)
}

func (s *Mem0Store) List(ctx context.Context, uid string, limit int) (raw any, err error) {
	u := fmt.Sprintf("%s/v1/memories/?user_id=%s&limit=%d", s.baseURL, url.QueryEscape(uid), limit)
	return httpx.Get[any](ctx, u, s.headers(), nil)
}

func (s *Mem0Store) Get(ctx context.Context, id string) (raw map[string]any, err error) {
	raw, err = s.cli.Get(ctx, fmt.Sprintf("%s/v1/memories/%s/", s.baseURL, url.PathEscape(id)), s.headers(), nil)
	if err != nil && strings.Contains(err.Error(), "status code: 404") {
		// 不存在与故障区分开, 调用方拿nil
		return nil, nil
	}
	return raw, err
}

func (s *Mem0Store) Update(ctx context.Context, id, text string, metadata map[string]any) (raw map[string]any, err error) {
	body := map[string]any{"text": text}
	if metadata != nil {
		body["metadata"] = metadata
	}
	return s.cli.Req(ctx, http.MethodPut, fmt.Sprintf("%s/v1/memories/%s/", s.baseURL, url.PathEscape(id)), s.headers(), body)
}

func (s *Mem0Store) Delete(ctx context.Context, id, uid string) error {
	u := fmt.Sprintf("%s/v1/memories/%s/?user_id=%s", s.baseURL, url.PathEscape(id), url.QueryEscape(uid))
	_, err := s.cli.Req(ctx, http.MethodDelete, u, s.headers(), nil)
	return err
}

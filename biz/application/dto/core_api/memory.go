package core_api

import "github.com/xh-polaris/advisor-core-api/biz/application/dto/basic"

type ListMemoryReq struct {
	Limit    int64  `json:"limit,omitempty" query:"limit"`
	Category string `json:"category,omitempty" query:"category"`
}

type ListMemoryResp struct {
	Resp     *basic.Response `json:"-"`
	Memories []*Memory       `json:"memories"`
	Total    int64           `json:"total"`
}

type GetMemoryReq struct {
	MemoryId string `json:"memory_id" path:"memory_id"`
}

type GetMemoryResp struct {
	Resp   *basic.Response `json:"-"`
	Memory *Memory         `json:"memory"`
}

type UpdateMemoryReq struct {
	MemoryId string `json:"memory_id" path:"memory_id"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

type UpdateMemoryResp struct {
	Resp   *basic.Response `json:"-"`
	Memory *Memory         `json:"memory"`
}

type DeleteMemoryReq struct {
	MemoryId string `json:"memory_id" path:"memory_id"`
}

type DeleteMemoryResp struct {
	Resp *basic.Response `json:"-"`
}

type BatchDeleteMemoryReq struct {
	Category string `json:"category,omitempty"`
}

type BatchDeleteMemoryResp struct {
	Resp         *basic.Response `json:"-"`
	DeletedCount int64           `json:"deleted_count"`
}

type SearchMemoryReq struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

type SearchMemoryResp struct {
	Resp    *basic.Response `json:"-"`
	Results []*Memory       `json:"results"`
	Query   string          `json:"query"`
}

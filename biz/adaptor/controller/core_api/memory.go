package core_api

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/xh-polaris/advisor-core-api/biz/adaptor"
	"github.com/xh-polaris/advisor-core-api/biz/application/dto/core_api"
	"github.com/xh-polaris/advisor-core-api/provider"
)

// ListMemory 获取用户记忆列表
// @router /memory/list [GET]
func ListMemory(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ListMemoryReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().MemoryService.ListMemory(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetMemory 获取单条记忆
// @router /memory/:memory_id [GET]
func GetMemory(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.GetMemoryReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().MemoryService.GetMemory(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UpdateMemory 更新记忆
// @router /memory/:memory_id [PUT]
func UpdateMemory(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.UpdateMemoryReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().MemoryService.UpdateMemory(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteMemory 删除单条记忆
// @router /memory/:memory_id [DELETE]
func DeleteMemory(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.DeleteMemoryReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().MemoryService.DeleteMemory(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// BatchDeleteMemory 批量删除记忆
// @router /memory/batch_delete [POST]
func BatchDeleteMemory(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.BatchDeleteMemoryReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().MemoryService.BatchDeleteMemory(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// SearchMemory 记忆检索
// @router /memory/search [POST]
func SearchMemory(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.SearchMemoryReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().MemoryService.SearchMemory(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

package core_api

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/xh-polaris/advisor-core-api/biz/adaptor"
	"github.com/xh-polaris/advisor-core-api/biz/application/dto/core_api"
	"github.com/xh-polaris/advisor-core-api/provider"
)

// CreateConversation 创建对话
// @router /conversation/create [POST]
func CreateConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.CreateConversationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().ConversationService.CreateConversation(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListConversation 分页获取对话列表
// @router /conversation/list [POST]
func ListConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ListConversationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().ConversationService.ListConversation(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetConversation 获取单个对话
// @router /conversation/get [GET]
func GetConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.GetConversationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().ConversationService.GetConversation(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListMessage 分页获取对话消息
// @router /conversation/messages [POST]
func ListMessage(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ListMessageReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().ConversationService.ListMessage(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

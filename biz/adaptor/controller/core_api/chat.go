package core_api

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/xh-polaris/advisor-core-api/biz/adaptor"
	"github.com/xh-polaris/advisor-core-api/biz/application/dto/core_api"
	"github.com/xh-polaris/advisor-core-api/provider"
)

// SendMessage 发送一轮对话
// @router /chat/send_message [POST]
func SendMessage(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.SendMessageReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().ChatService.SendMessage(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

package service

import (
	"context"

	"github.com/google/wire"
	"github.com/xh-polaris/advisor-core-api/biz/adaptor"
	"github.com/xh-polaris/advisor-core-api/biz/application/dto/core_api"
	"github.com/xh-polaris/advisor-core-api/biz/domain/flow"
	"github.com/xh-polaris/advisor-core-api/biz/domain/memory"
	"github.com/xh-polaris/advisor-core-api/biz/infra/mapper/message"
	"github.com/xh-polaris/advisor-core-api/biz/infra/util"
	"github.com/xh-polaris/advisor-core-api/pkg/errorx"
	"github.com/xh-polaris/advisor-core-api/pkg/logs"
	"github.com/xh-polaris/advisor-core-api/types/errno"
)

type IChatService interface {
	SendMessage(ctx context.Context, req *core_api.SendMessageReq) (*core_api.SendMessageResp, error)
}

type ChatService struct {
	ChatFlow *flow.ChatFlow
}

var ChatServiceSet = wire.NewSet(
	wire.Struct(new(ChatService), "*"),
	wire.Bind(new(IChatService), new(*ChatService)),
)

func (s *ChatService) SendMessage(ctx context.Context, req *core_api.SendMessageReq) (*core_api.SendMessageResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	r, err := s.ChatFlow.SendMessage(ctx, uid, req.ConversationId, req.Message)
	if err != nil {
		return nil, err
	}

	return &core_api.SendMessageResp{
		Resp:             util.Success(),
		ConversationId:   r.ConversationId,
		UserMessage:      toMessageView(r.UserMessage),
		AssistantMessage: toMessageView(r.AssistantMessage),
		MemoriesUsed:     toMemoryViews(r.MemoriesUsed),
	}, nil
}

func toMessageView(m *message.Message) *core_api.Message {
	if m == nil {
		return nil
	}
	return &core_api.Message{
		MessageId:      m.MessageId.Hex(),
		ConversationId: m.ConversationId.Hex(),
		Role:           message.RoleItoS[m.Role],
		Content:        m.Content,
		TokenCount:     m.TokenCount,
		CreateTime:     m.CreateTime.UnixMilli(),
	}
}

func toMemoryViews(ms []*memory.Memory) []*core_api.Memory {
	out := make([]*core_api.Memory, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMemoryView(m))
	}
	return out
}

func toMemoryView(m *memory.Memory) *core_api.Memory {
	v := &core_api.Memory{
		MemoryId:       m.MemoryId,
		Content:        m.Content,
		RelevanceScore: m.RelevanceScore,
		Category:       m.Category,
		Metadata:       m.Metadata,
	}
	if !m.CreateTime.IsZero() {
		v.CreateTime = m.CreateTime.UnixMilli()
	}
	if !m.UpdateTime.IsZero() {
		v.UpdateTime = m.UpdateTime.UnixMilli()
	}
	return v
}

package service

import (
	"context"
	"errors"

	"github.com/google/wire"
	"github.com/xh-polaris/advisor-core-api/biz/adaptor"
	"github.com/xh-polaris/advisor-core-api/biz/application/dto/core_api"
	"github.com/xh-polaris/advisor-core-api/biz/infra/mapper/conversation"
	mmsg "github.com/xh-polaris/advisor-core-api/biz/infra/mapper/message"
	"github.com/xh-polaris/advisor-core-api/biz/infra/util"
	"github.com/xh-polaris/advisor-core-api/pkg/errorx"
	"github.com/xh-polaris/advisor-core-api/pkg/logs"
	"github.com/xh-polaris/advisor-core-api/types/errno"
)

type IConversationService interface {
	CreateConversation(ctx context.Context, req *core_api.CreateConversationReq) (*core_api.CreateConversationResp, error)
	ListConversation(ctx context.Context, req *core_api.ListConversationReq) (*core_api.ListConversationResp, error)
	GetConversation(ctx context.Context, req *core_api.GetConversationReq) (*core_api.GetConversationResp, error)
	ListMessage(ctx context.Context, req *core_api.ListMessageReq) (*core_api.ListMessageResp, error)
}

type ConversationService struct {
	ConversationMapper conversation.MongoMapper
	MessageMapper      mmsg.MongoMapper
}

var ConversationServiceSet = wire.NewSet(
	wire.Struct(new(ConversationService), "*"),
	wire.Bind(new(IConversationService), new(*ConversationService)),
)

func (s *ConversationService) CreateConversation(ctx context.Context, _ *core_api.CreateConversationReq) (*core_api.CreateConversationResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	// 调用mapper创建对话
	c, err := s.ConversationMapper.CreateNewConversation(ctx, uid)
	if err != nil {
		logs.Errorf("create conversation error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationCreateErrCode)
	}

	return &core_api.CreateConversationResp{Resp: util.Success(), ConversationId: c.ConversationId.Hex()}, nil
}

func (s *ConversationService) ListConversation(ctx context.Context, req *core_api.ListConversationReq) (*core_api.ListConversationResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	cs, hasMore, err := s.ConversationMapper.ListConversations(ctx, uid, req.GetPage())
	if err != nil {
		logs.Errorf("list conversation error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationListErrCode)
	}

	views := make([]*core_api.Conversation, 0, len(cs))
	for _, c := range cs {
		views = append(views, toConversationView(c))
	}
	return &core_api.ListConversationResp{Resp: util.Success(), Conversations: views, HasMore: hasMore}, nil
}

func (s *ConversationService) GetConversation(ctx context.Context, req *core_api.GetConversationReq) (*core_api.GetConversationResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	c, err := s.ConversationMapper.FindOne(ctx, req.ConversationId)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			return nil, errorx.New(errno.ConversationNotFoundErrCode)
		}
		return nil, errorx.WrapByCode(err, errno.ConversationGetErrCode)
	}
	// 对话归属校验
	if c.UserId.Hex() != uid {
		return nil, errorx.New(errno.ChatConversationOwnErrCode)
	}

	return &core_api.GetConversationResp{Resp: util.Success(), Conversation: toConversationView(c)}, nil
}

func (s *ConversationService) ListMessage(ctx context.Context, req *core_api.ListMessageReq) (*core_api.ListMessageResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	// 先确认归属再翻消息
	c, err := s.ConversationMapper.FindOne(ctx, req.ConversationId)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			return nil, errorx.New(errno.ConversationNotFoundErrCode)
		}
		return nil, errorx.WrapByCode(err, errno.ConversationGetErrCode)
	}
	if c.UserId.Hex() != uid {
		return nil, errorx.New(errno.ChatConversationOwnErrCode)
	}

	msgs, hasMore, err := s.MessageMapper.ListMessage(ctx, req.ConversationId, req.GetPage())
	if err != nil {
		logs.Errorf("list message error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationListMessageErrCode)
	}

	views := make([]*core_api.Message, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, toMessageView(m))
	}
	return &core_api.ListMessageResp{Resp: util.Success(), Messages: views, HasMore: hasMore}, nil
}

func toConversationView(c *conversation.Conversation) *core_api.Conversation {
	return &core_api.Conversation{
		ConversationId: c.ConversationId.Hex(),
		Status:         c.Status,
		MessageCount:   c.MessageCount,
		CreateTime:     c.CreateTime.UnixMilli(),
		LastActivity:   c.LastActivity.UnixMilli(),
	}
}

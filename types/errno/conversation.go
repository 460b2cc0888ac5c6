package errno

import (
	"github.com/xh-polaris/advisor-core-api/pkg/errorx/code"
)

const (
	ConversationCreateErrCode      = 30001
	ConversationListErrCode        = 30002
	ConversationGetErrCode         = 30003
	ConversationNotFoundErrCode    = 30004
	ConversationListMessageErrCode = 30005
)

func init() {
	code.Register(
		ConversationCreateErrCode,
		"创建对话失败",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationListErrCode,
		"分页获取对话列表失败",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationGetErrCode,
		"获取对话失败",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationNotFoundErrCode,
		"对话不存在",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationListMessageErrCode,
		"分页获取对话消息失败",
		code.WithAffectStability(false),
	)
}

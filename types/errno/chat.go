package errno

import (
	"github.com/xh-polaris/advisor-core-api/pkg/errorx/code"
)

const (
	ChatEmptyMessageErrCode    = 40001
	ChatMessageTooLongErrCode  = 40002
	ChatConversationOwnErrCode = 40003
	ChatHistoryErrCode         = 40004
	ChatPersistErrCode         = 40005
	ChatInvalidUserErrCode     = 40006
)

func init() {
	code.Register(
		ChatEmptyMessageErrCode,
		"消息内容不能为空",
		code.WithAffectStability(false),
	)
	code.Register(
		ChatMessageTooLongErrCode,
		"消息长度超过上限{max}",
		code.WithAffectStability(false),
	)
	code.Register(
		ChatConversationOwnErrCode,
		"无权访问该对话",
		code.WithAffectStability(false),
	)
	code.Register(
		ChatHistoryErrCode,
		"获取对话历史失败",
		code.WithAffectStability(true),
	)
	code.Register(
		ChatPersistErrCode,
		"消息保存失败",
		code.WithAffectStability(true),
	)
	code.Register(
		ChatInvalidUserErrCode,
		"用户标识不合法",
		code.WithAffectStability(false),
	)
}

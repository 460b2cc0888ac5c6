package errno

import (
	"github.com/xh-polaris/advisor-core-api/pkg/errorx/code"
)

const (
	MemoryListErrCode        = 50001
	MemoryGetErrCode         = 50002
	MemoryNotFoundErrCode    = 50003
	MemoryUpdateErrCode      = 50004
	MemoryDeleteErrCode      = 50005
	MemoryBatchDeleteErrCode = 50006
	MemorySearchErrCode      = 50007
)

func init() {
	code.Register(
		MemoryListErrCode,
		"获取记忆列表失败",
		code.WithAffectStability(false),
	)
	code.Register(
		MemoryGetErrCode,
		"获取记忆失败",
		code.WithAffectStability(false),
	)
	code.Register(
		MemoryNotFoundErrCode,
		"记忆不存在",
		code.WithAffectStability(false),
	)
	code.Register(
		MemoryUpdateErrCode,
		"更新记忆失败",
		code.WithAffectStability(false),
	)
	code.Register(
		MemoryDeleteErrCode,
		"删除记忆失败",
		code.WithAffectStability(false),
	)
	code.Register(
		MemoryBatchDeleteErrCode,
		"批量删除记忆失败",
		code.WithAffectStability(false),
	)
	code.Register(
		MemorySearchErrCode,
		"检索记忆失败",
		code.WithAffectStability(false),
	)
}

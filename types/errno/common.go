package errno

import (
	"github.com/xh-polaris/advisor-core-api/pkg/errorx/code"
)

const (
	UnAuthErrCode      = 1000
	UnImplementErrCode = 888
	OIDErrCode         = 777
	unknowCode         = 999
)

func init() {
	code.Register(
		UnAuthErrCode,
		"身份认证失败",
		code.WithAffectStability(false),
	)
	code.Register(
		UnImplementErrCode,
		"功能暂未实现",
		code.WithAffectStability(false),
	)
	code.Register(
		OIDErrCode,
		"非法的id格式",
		code.WithAffectStability(false),
	)
	code.Register(
		unknowCode,
		"未知错误",
		code.WithAffectStability(false),
	)
}

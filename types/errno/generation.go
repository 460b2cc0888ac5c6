package errno

import (
	"github.com/xh-polaris/advisor-core-api/pkg/errorx/code"
)

const (
	GenerationErrCode        = 60001
	GenerationRefusedErrCode = 60002
)

func init() {
	code.Register(
		GenerationErrCode,
		"生成服务暂不可用, 请稍后再试",
		code.WithAffectStability(true),
	)
	code.Register(
		GenerationRefusedErrCode,
		"该内容无法回应, 换个话题试试吧",
		code.WithAffectStability(false),
	)
}

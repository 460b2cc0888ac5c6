package util

import (
	"strings"

	"github.com/xh-polaris/advisor-core-api/biz/application/dto/basic"
)

// Success 返回成功的basic.Response指针
func Success() *basic.Response {
	return &basic.Response{
		Code: 200,
		Msg:  "success",
	}
}

// CountTokens 估算文本token数, 以空白分词计数的廉价近似, 不是真实分词器
func CountTokens(text string) int32 {
	return int32(len(strings.Fields(text)))
}

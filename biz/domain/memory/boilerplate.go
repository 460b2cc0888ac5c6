package memory

import (
	"strings"

	"github.com/xh-polaris/advisor-core-api/pkg/ac"
)

// 部分后端会把"用户在问什么"这类改写混进搜索结果,
// 它们是检索时生成的套话而非用户事实, 全部过滤
var boilerplatePatterns = []string{
	"looking for",
	"asking about",
	"searching for",
	"wants to know",
	"user is asking",
	"正在詢問",
	"正在寻找",
	"正在尋找",
	"想知道",
}

func init() {
	if err := ac.InitAc(boilerplatePatterns); err != nil {
		panic(err)
	}
}

// isBoilerplate 命中套话模式的内容不算真实记忆
func isBoilerplate(content string) bool {
	hit, _ := ac.AcSearch(strings.ToLower(content), boilerplatePatterns, true)
	return hit
}

package model

import (
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/xh-polaris/advisor-core-api/biz/domain/memory"
)

// persona 理财顾问人设
const persona = `你是一位專業、友善的理財顧問助手。你的職責是：
1. 根據用戶的背景和偏好提供個人化的理財建議
2. 用淺顯易懂的方式解釋金融概念
3. 提醒用戶投資有風險，重大決策前應諮詢持牌專業人士
4. 不提供具體的個股買賣指令

請使用繁體中文回覆，語氣親切自然。`

// BuildMessages 组装一次生成的完整上下文:
// 人设(含检索到的用户背景) + 截断后的对话历史 + 本轮输入
func BuildMessages(memories []*memory.Memory, history []*schema.Message, input string, window int) []*schema.Message {
	var sb strings.Builder
	sb.WriteString(persona)
	if len(memories) > 0 {
		sb.WriteString("\n\n已知的用戶背景：\n")
		for _, m := range memories {
			sb.WriteString("- ")
			sb.WriteString(m.Content)
			sb.WriteString("\n")
		}
		sb.WriteString("請根據這些背景提供個人化建議，不要重複詢問用戶已經告訴過你的資訊。")
	}

	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}

	out := make([]*schema.Message, 0, len(history)+2)
	out = append(out, schema.SystemMessage(sb.String()))
	out = append(out, history...)
	out = append(out, schema.UserMessage(input))
	return out
}

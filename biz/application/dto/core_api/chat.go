package core_api

import "github.com/xh-polaris/advisor-core-api/biz/application/dto/basic"

// SendMessageReq 发送一轮对话
// ConversationId为空时新建对话, 指向不存在对话时也会静默新建
type SendMessageReq struct {
	ConversationId string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
}

type SendMessageResp struct {
	Resp             *basic.Response `json:"-"`
	ConversationId   string          `json:"conversation_id"`
	UserMessage      *Message        `json:"user_message"`
	AssistantMessage *Message        `json:"assistant_message"`
	MemoriesUsed     []*Memory       `json:"memories_used"`
}

type Message struct {
	MessageId      string `json:"message_id"`
	ConversationId string `json:"conversation_id"`
	Role           string `json:"role"`
	Content        string `json:"content"`
	TokenCount     int32  `json:"token_count"`
	CreateTime     int64  `json:"create_time"`
}

type Memory struct {
	MemoryId       string         `json:"memory_id"`
	Content        string         `json:"content"`
	RelevanceScore float64        `json:"relevance_score"`
	Category       string         `json:"category,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreateTime     int64          `json:"create_time,omitempty"`
	UpdateTime     int64          `json:"update_time,omitempty"`
}

package core_api

import "github.com/xh-polaris/advisor-core-api/biz/application/dto/basic"

type CreateConversationReq struct{}

type CreateConversationResp struct {
	Resp           *basic.Response `json:"-"`
	ConversationId string          `json:"conversation_id"`
}

type ListConversationReq struct {
	Page *basic.Page `json:"page,omitempty"`
}

func (r *ListConversationReq) GetPage() *basic.Page {
	if r == nil {
		return nil
	}
	return r.Page
}

type Conversation struct {
	ConversationId string `json:"conversation_id"`
	Status         string `json:"status"`
	MessageCount   int64  `json:"message_count"`
	CreateTime     int64  `json:"create_time"`
	LastActivity   int64  `json:"last_activity"`
}

type ListConversationResp struct {
	Resp          *basic.Response `json:"-"`
	Conversations []*Conversation `json:"conversations"`
	HasMore       bool            `json:"has_more"`
}

type GetConversationReq struct {
	ConversationId string `json:"conversation_id" query:"conversation_id"`
}

type GetConversationResp struct {
	Resp         *basic.Response `json:"-"`
	Conversation *Conversation   `json:"conversation"`
}

type ListMessageReq struct {
	ConversationId string      `json:"conversation_id" query:"conversation_id"`
	Page           *basic.Page `json:"page,omitempty"`
}

func (r *ListMessageReq) GetPage() *basic.Page {
	if r == nil {
		return nil
	}
	return r.Page
}

type ListMessageResp struct {
	Resp     *basic.Response `json:"-"`
	Messages []*Message      `json:"messages"`
	HasMore  bool            `json:"has_more"`
}

package model

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// StubChatModel 测试桩, 按预设返回
// Received保留最近一次收到的完整上下文, 供断言
type StubChatModel struct {
	Reply        string
	FinishReason string
	Err          error
	Received     []*schema.Message
}

func (s *StubChatModel) Generate(_ context.Context, in []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	s.Received = in
	if s.Err != nil {
		return nil, s.Err
	}
	msg := schema.AssistantMessage(s.Reply, nil)
	msg.ResponseMeta = &schema.ResponseMeta{FinishReason: s.FinishReason}
	return msg, nil
}

func (s *StubChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	sr, sw := schema.Pipe[*schema.Message](1)
	go func() {
		defer sw.Close()
		if s.Err != nil {
			sw.Send(nil, s.Err)
			return
		}
		sw.Send(schema.AssistantMessage(s.Reply, nil), nil)
	}()
	return sr, nil
}

func (s *StubChatModel) WithTools(_ []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return s, nil
}

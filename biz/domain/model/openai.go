package model

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/xh-polaris/advisor-core-api/biz/infra/config"
)

func init() {
	RegisterModel(OpenAICompatModel, NewOpenAICompatChatModel)
}

// OpenAICompatModel openai兼容网关, 作为gemini之外的备选
const OpenAICompatModel = "openai"

func NewOpenAICompatChatModel(ctx context.Context, uid string) (model.ToolCallingChatModel, error) {
	c := config.GetConfig()
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  c.OpenAI.APIKey,
		BaseURL: c.OpenAI.BaseURL,
		Model:   c.OpenAI.Model,
		User:    &uid,
	})
}

package model

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"github.com/xh-polaris/advisor-core-api/biz/infra/config"
	"google.golang.org/genai"
)

func init() {
	RegisterModel(GeminiModel, NewGeminiChatModel)
}

const GeminiModel = "gemini"

func NewGeminiChatModel(ctx context.Context, _ string) (model.ToolCallingChatModel, error) {
	c := config.GetConfig()
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return gemini.NewChatModel(ctx, &gemini.Config{
		Client: cli,
		Model:  c.Gemini.Model,
	})
}

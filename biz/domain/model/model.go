package model

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/xh-polaris/advisor-core-api/biz/infra/config"
	"github.com/xh-polaris/advisor-core-api/pkg/logs"
)

type getModelFunc func(ctx context.Context, uid string) (model.ToolCallingChatModel, error)

var models = map[string]getModelFunc{}

func RegisterModel(name string, f getModelFunc) {
	models[name] = f
}

// getModel 获取模型
func getModel(ctx context.Context, name, uid string) (model.ToolCallingChatModel, error) {
	f, ok := models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model %s", name)
	}
	return f(ctx, uid)
}

// Result 一次生成的结果
// Refused为true时Content是配置的兜底文案而非模型产出
type Result struct {
	Content      string
	Refused      bool
	FinishReason string
}

// GenerationDomain 对话生成域, 持有采样参数与安全策略
type GenerationDomain struct {
	name        string
	temperature float32
	maxTokens   int
	policy      string
	fallback    string
}

func NewGenerationDomain(c *config.Config) *GenerationDomain {
	name := GeminiModel
	if c.Gemini.APIKey == "" && c.OpenAI.APIKey != "" {
		name = OpenAICompatModel
	}
	return &GenerationDomain{
		name:        name,
		temperature: c.Chat.Temperature,
		maxTokens:   c.Chat.MaxTokens,
		policy:      c.Chat.SafetyPolicy,
		fallback:    c.Chat.FallbackText,
	}
}

// Generate 调一次模型并把安全拒答按策略折算进结果
// 只有基础设施类失败(网络/配额/超时)会以错误返回
func (d *GenerationDomain) Generate(ctx context.Context, uid string, in []*schema.Message) (*Result, error) {
	cm, err := getModel(ctx, d.name, uid)
	if err != nil {
		return nil, err
	}
	msg, err := cm.Generate(ctx, in,
		model.WithTemperature(d.temperature),
		model.WithMaxTokens(d.maxTokens),
	)
	return d.resolve(ctx, msg, err)
}

// resolve 区分三类结局: 正常产出 / 安全拒答 / 不可用输出
func (d *GenerationDomain) resolve(ctx context.Context, msg *schema.Message, err error) (*Result, error) {
	switch classify(msg, err) {
	case outcomeOK:
		return &Result{Content: msg.Content, FinishReason: finishReason(msg)}, nil
	case outcomeRefused:
		if d.policy == config.SafetyPolicyFail {
			return nil, ErrRefused
		}
		logs.CtxWarnf(ctx, "[model] generation refused by safety filter, falling back")
		return &Result{Content: d.fallback, Refused: true, FinishReason: finishReason(msg)}, nil
	default:
		if err != nil {
			return nil, err
		}
		return nil, ErrNoUsableOutput
	}
}

func finishReason(msg *schema.Message) string {
	if msg == nil || msg.ResponseMeta == nil {
		return ""
	}
	return msg.ResponseMeta.FinishReason
}

package model

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xh-polaris/advisor-core-api/biz/infra/config"
)

func assistant(content, finishReason string) *schema.Message {
	m := schema.AssistantMessage(content, nil)
	m.ResponseMeta = &schema.ResponseMeta{FinishReason: finishReason}
	return m
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		msg  *schema.Message
		err  error
		want outcome
	}{
		{"正常产出", assistant("建議分散投資", "stop"), nil, outcomeOK},
		{"finish_reason安全拦截", assistant("", "SAFETY"), nil, outcomeRefused},
		{"content_filter拦截", assistant("", "content_filter"), nil, outcomeRefused},
		{"拦截错误按关键词识别", nil, errors.New("response blocked: HARM_CATEGORY_DANGEROUS"), outcomeRefused},
		{"普通网络错误不算拒答", nil, errors.New("dial tcp: connection refused"), outcomeUnusable},
		{"空内容非安全原因", assistant("", "stop"), nil, outcomeUnusable},
		{"nil消息", nil, nil, outcomeUnusable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, classify(c.msg, c.err))
		})
	}
}

func newTestGenerationDomain(policy string) *GenerationDomain {
	c := &config.Config{}
	c.Gemini.APIKey = "test"
	c.Chat.SafetyPolicy = policy
	c.Chat.FallbackText = "兜底文案"
	c.Chat.Temperature = 0.7
	c.Chat.MaxTokens = 500
	return NewGenerationDomain(c)
}

func TestResolveContinuePolicy(t *testing.T) {
	d := newTestGenerationDomain(config.SafetyPolicyContinue)

	r, err := d.resolve(context.Background(), assistant("", "SAFETY"), nil)
	require.NoError(t, err)
	assert.True(t, r.Refused)
	assert.Equal(t, "兜底文案", r.Content)
}

func TestResolveFailPolicy(t *testing.T) {
	d := newTestGenerationDomain(config.SafetyPolicyFail)

	_, err := d.resolve(context.Background(), assistant("", "SAFETY"), nil)
	assert.ErrorIs(t, err, ErrRefused)
}

func TestResolveUnusableOutput(t *testing.T) {
	d := newTestGenerationDomain(config.SafetyPolicyContinue)

	_, err := d.resolve(context.Background(), assistant("", "stop"), nil)
	assert.ErrorIs(t, err, ErrNoUsableOutput)

	// 基础设施错误原样上抛
	netErr := errors.New("dial tcp: i/o timeout")
	_, err = d.resolve(context.Background(), nil, netErr)
	assert.ErrorIs(t, err, netErr)
}

func TestGenerateWithStub(t *testing.T) {
	stub := &StubChatModel{Reply: "建議先建立緊急備用金", FinishReason: "stop"}
	RegisterModel(GeminiModel, func(_ context.Context, _ string) (model.ToolCallingChatModel, error) {
		return stub, nil
	})
	defer RegisterModel(GeminiModel, NewGeminiChatModel)

	d := newTestGenerationDomain(config.SafetyPolicyContinue)
	r, err := d.Generate(context.Background(), "u1", []*schema.Message{schema.UserMessage("你好")})
	require.NoError(t, err)
	assert.False(t, r.Refused)
	assert.Equal(t, "建議先建立緊急備用金", r.Content)
}

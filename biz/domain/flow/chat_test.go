package flow

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	emodel "github.com/cloudwego/eino/components/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xh-polaris/advisor-core-api/biz/application/dto/basic"
	"github.com/xh-polaris/advisor-core-api/biz/domain/memory"
	"github.com/xh-polaris/advisor-core-api/biz/domain/model"
	"github.com/xh-polaris/advisor-core-api/biz/infra/config"
	"github.com/xh-polaris/advisor-core-api/biz/infra/cst"
	"github.com/xh-polaris/advisor-core-api/biz/infra/mapper/conversation"
	"github.com/xh-polaris/advisor-core-api/biz/infra/mapper/message"
	"github.com/xh-polaris/advisor-core-api/pkg/errorx"
	"github.com/xh-polaris/advisor-core-api/types/errno"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeConvMapper struct {
	convs     map[string]*conversation.Conversation
	createErr error
	findErr   error
	touchErr  error
	touches   int
}

func (f *fakeConvMapper) CreateNewConversation(_ context.Context, uid string) (*conversation.Conversation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	oid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c := &conversation.Conversation{
		ConversationId: primitive.NewObjectID(),
		UserId:         oid,
		Status:         cst.ConversationActive,
		CreateTime:     now,
		LastActivity:   now,
	}
	f.convs[c.ConversationId.Hex()] = c
	return c, nil
}

func (f *fakeConvMapper) FindOne(_ context.Context, cid string) (*conversation.Conversation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	c, ok := f.convs[cid]
	if !ok {
		return nil, conversation.ErrNotFound
	}
	return c, nil
}

func (f *fakeConvMapper) ListConversations(_ context.Context, _ string, _ *basic.Page) ([]*conversation.Conversation, bool, error) {
	return nil, false, nil
}

func (f *fakeConvMapper) TouchConversation(_ context.Context, _ string, _ int64) error {
	if f.touchErr != nil {
		return f.touchErr
	}
	f.touches++
	return nil
}

type fakeMsgMapper struct {
	msgs        []*message.Message
	insertErr   error
	retrieveErr error
}

func (f *fakeMsgMapper) InsertOne(_ context.Context, m *message.Message) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.msgs = append(f.msgs, m)
	return nil
}

func (f *fakeMsgMapper) RetrieveMessages(_ context.Context, cid string, _ int) ([]*message.Message, error) {
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	out := make([]*message.Message, 0)
	for _, m := range f.msgs {
		if m.ConversationId.Hex() == cid {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMsgMapper) ListMessage(_ context.Context, _ string, _ *basic.Page) ([]*message.Message, bool, error) {
	return nil, false, nil
}

// fakeMemStore 只实现chat流程用到的路径
type fakeMemStore struct {
	searchRaw any
	searchErr error
}

func (f *fakeMemStore) Add(_ context.Context, _, _ string, _ map[string]any) (any, error) {
	return map[string]any{"id": "m1"}, nil
}
func (f *fakeMemStore) Search(_ context.Context, _, _ string, _ int) (any, error) {
	return f.searchRaw, f.searchErr
}
func (f *fakeMemStore) List(_ context.Context, _ string, _ int) (any, error) { return nil, nil }
func (f *fakeMemStore) Get(_ context.Context, _ string) (map[string]any, error) {
	return nil, nil
}
func (f *fakeMemStore) Update(_ context.Context, _, _ string, _ map[string]any) (map[string]any, error) {
	return nil, nil
}
func (f *fakeMemStore) Delete(_ context.Context, _, _ string) error { return nil }

type env struct {
	flow  *ChatFlow
	convs *fakeConvMapper
	msgs  *fakeMsgMapper
	uid   string
}

func newEnv(t *testing.T, policy string, stub *model.StubChatModel, store *fakeMemStore) *env {
	t.Helper()
	c := &config.Config{}
	c.Gemini.APIKey = "test"
	c.Memory.TopK = 5
	c.Chat.ContextWindow = 10
	c.Chat.MaxMessageLength = 10000
	c.Chat.SafetyPolicy = policy
	c.Chat.FallbackText = "抱歉，這個問題我無法回答。"
	c.Chat.Temperature = 0.7
	c.Chat.MaxTokens = 500

	model.RegisterModel(model.GeminiModel, func(_ context.Context, _ string) (emodel.ToolCallingChatModel, error) {
		return stub, nil
	})
	t.Cleanup(func() { model.RegisterModel(model.GeminiModel, model.NewGeminiChatModel) })

	convs := &fakeConvMapper{convs: map[string]*conversation.Conversation{}}
	msgs := &fakeMsgMapper{}
	return &env{
		flow:  NewChatFlow(c, convs, msgs, memory.NewMemoryDomain(c, store), model.NewGenerationDomain(c)),
		convs: convs,
		msgs:  msgs,
		uid:   primitive.NewObjectID().Hex(),
	}
}

func codeOf(t *testing.T, err error) int32 {
	t.Helper()
	var se errorx.StatusError
	require.ErrorAs(t, err, &se)
	return se.Code()
}

func TestSendMessageHappyPath(t *testing.T) {
	e := newEnv(t, config.SafetyPolicyContinue,
		&model.StubChatModel{Reply: "建議分散配置", FinishReason: "stop"},
		&fakeMemStore{searchRaw: []any{map[string]any{"id": "m1", "memory": "偏好低風險", "score": 0.9}}})

	r, err := e.flow.SendMessage(context.Background(), e.uid, "", "該怎麼投資")
	require.NoError(t, err)

	assert.True(t, r.ConversationCreated)
	assert.NotEmpty(t, r.ConversationId)
	assert.Equal(t, "該怎麼投資", r.UserMessage.Content)
	assert.Equal(t, "建議分散配置", r.AssistantMessage.Content)
	assert.False(t, r.Refused)
	require.Len(t, r.MemoriesUsed, 1)
	assert.Equal(t, "m1", r.MemoriesUsed[0].MemoryId)

	// 用户消息和模型回复都已落库, 活跃信息刷新两次
	assert.Len(t, e.msgs.msgs, 2)
	assert.Equal(t, 2, e.convs.touches)
}

func TestSendMessageValidation(t *testing.T) {
	e := newEnv(t, config.SafetyPolicyContinue,
		&model.StubChatModel{Reply: "ok", FinishReason: "stop"}, &fakeMemStore{})

	_, err := e.flow.SendMessage(context.Background(), e.uid, "", "   ")
	assert.EqualValues(t, errno.ChatEmptyMessageErrCode, codeOf(t, err))

	// 非法用户标识在任何落库前拒绝
	_, err = e.flow.SendMessage(context.Background(), "not-an-object-id", "", "hello")
	assert.EqualValues(t, errno.ChatInvalidUserErrCode, codeOf(t, err))
	assert.Empty(t, e.msgs.msgs)

	// 恰好到上限的消息可以通过
	_, err = e.flow.SendMessage(context.Background(), e.uid, "", strings.Repeat("あ", 10000))
	assert.NoError(t, err)

	// 超出一个字符即拒绝, 且拒绝发生在任何落库前
	before := len(e.msgs.msgs)
	_, err = e.flow.SendMessage(context.Background(), e.uid, "", strings.Repeat("あ", 10001))
	assert.EqualValues(t, errno.ChatMessageTooLongErrCode, codeOf(t, err))
	assert.Len(t, e.msgs.msgs, before)
}

func TestSendMessageRecreatesMissingConversation(t *testing.T) {
	e := newEnv(t, config.SafetyPolicyContinue,
		&model.StubChatModel{Reply: "ok", FinishReason: "stop"}, &fakeMemStore{})

	ghost := primitive.NewObjectID().Hex()
	r, err := e.flow.SendMessage(context.Background(), e.uid, ghost, "hello")
	require.NoError(t, err)
	assert.True(t, r.ConversationCreated)
	assert.NotEqual(t, ghost, r.ConversationId)
}

func TestSendMessageRejectsForeignConversation(t *testing.T) {
	e := newEnv(t, config.SafetyPolicyContinue,
		&model.StubChatModel{Reply: "ok", FinishReason: "stop"}, &fakeMemStore{})

	other, err := e.convs.CreateNewConversation(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)

	_, err = e.flow.SendMessage(context.Background(), e.uid, other.ConversationId.Hex(), "hello")
	assert.EqualValues(t, errno.ChatConversationOwnErrCode, codeOf(t, err))
	// 归属校验先于任何写入
	assert.Empty(t, e.msgs.msgs)
	assert.Equal(t, 0, e.convs.touches)
}

func TestSendMessageDegradedSearch(t *testing.T) {
	e := newEnv(t, config.SafetyPolicyContinue,
		&model.StubChatModel{Reply: "ok", FinishReason: "stop"},
		&fakeMemStore{searchErr: errors.New("memory service down")})

	r, err := e.flow.SendMessage(context.Background(), e.uid, "", "hello")
	require.NoError(t, err)
	assert.Empty(t, r.MemoriesUsed)
	assert.Len(t, e.msgs.msgs, 2)
}

func TestSendMessageSafetyContinue(t *testing.T) {
	e := newEnv(t, config.SafetyPolicyContinue,
		&model.StubChatModel{Reply: "", FinishReason: "SAFETY"}, &fakeMemStore{})

	r, err := e.flow.SendMessage(context.Background(), e.uid, "", "危險話題")
	require.NoError(t, err)
	assert.True(t, r.Refused)
	assert.Equal(t, "抱歉，這個問題我無法回答。", r.AssistantMessage.Content)
	// 兜底回复照常落库
	assert.Len(t, e.msgs.msgs, 2)
}

func TestSendMessageSafetyFail(t *testing.T) {
	e := newEnv(t, config.SafetyPolicyFail,
		&model.StubChatModel{Reply: "", FinishReason: "SAFETY"}, &fakeMemStore{})

	_, err := e.flow.SendMessage(context.Background(), e.uid, "", "危險話題")
	assert.EqualValues(t, errno.GenerationRefusedErrCode, codeOf(t, err))
	// 用户消息已落库, 模型回复没有
	assert.Len(t, e.msgs.msgs, 1)
}

func TestSendMessageHistoryFailureIsTerminal(t *testing.T) {
	e := newEnv(t, config.SafetyPolicyContinue,
		&model.StubChatModel{Reply: "ok", FinishReason: "stop"}, &fakeMemStore{})
	e.msgs.retrieveErr = errors.New("mongo timeout")

	_, err := e.flow.SendMessage(context.Background(), e.uid, "", "hello")
	assert.EqualValues(t, errno.ChatHistoryErrCode, codeOf(t, err))
}

func TestSendMessageGenerationFailure(t *testing.T) {
	e := newEnv(t, config.SafetyPolicyContinue,
		&model.StubChatModel{Err: errors.New("dial tcp: i/o timeout")}, &fakeMemStore{})

	_, err := e.flow.SendMessage(context.Background(), e.uid, "", "hello")
	assert.EqualValues(t, errno.GenerationErrCode, codeOf(t, err))
}

func TestSendMessageTouchFailureIsTerminal(t *testing.T) {
	e := newEnv(t, config.SafetyPolicyContinue,
		&model.StubChatModel{Reply: "ok", FinishReason: "stop"}, &fakeMemStore{})
	e.convs.touchErr = errors.New("mongo timeout")

	// 计数刷新失败视同保存失败, 不能报成功却让计数落后
	_, err := e.flow.SendMessage(context.Background(), e.uid, "", "hello")
	assert.EqualValues(t, errno.ChatPersistErrCode, codeOf(t, err))
	assert.Len(t, e.msgs.msgs, 1)
}

func TestSendMessageCurrentTurnAppearsOnceInPrompt(t *testing.T) {
	stub := &model.StubChatModel{Reply: "第一輪回覆", FinishReason: "stop"}
	e := newEnv(t, config.SafetyPolicyContinue, stub, &fakeMemStore{})

	r1, err := e.flow.SendMessage(context.Background(), e.uid, "", "第一輪")
	require.NoError(t, err)
	// 首轮没有历史: 人设 + 本轮输入
	require.Len(t, stub.Received, 2)
	assert.Equal(t, "第一輪", stub.Received[1].Content)

	_, err = e.flow.SendMessage(context.Background(), e.uid, r1.ConversationId, "第二輪")
	require.NoError(t, err)
	// 次轮: 人设 + 两条历史 + 本轮输入, 刚落库的本轮消息不重复出现
	require.Len(t, stub.Received, 4)
	assert.Equal(t, "第一輪", stub.Received[1].Content)
	assert.Equal(t, "第一輪回覆", stub.Received[2].Content)
	assert.Equal(t, "第二輪", stub.Received[3].Content)
}

func TestSendMessageHistoryCarriedIntoNextTurn(t *testing.T) {
	stub := &model.StubChatModel{Reply: "第一輪回覆", FinishReason: "stop"}
	e := newEnv(t, config.SafetyPolicyContinue, stub, &fakeMemStore{})

	r1, err := e.flow.SendMessage(context.Background(), e.uid, "", "第一輪")
	require.NoError(t, err)

	r2, err := e.flow.SendMessage(context.Background(), e.uid, r1.ConversationId, "第二輪")
	require.NoError(t, err)
	assert.False(t, r2.ConversationCreated)
	assert.Equal(t, r1.ConversationId, r2.ConversationId)
	assert.Len(t, e.msgs.msgs, 4)
}

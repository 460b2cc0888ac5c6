package flow

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/xh-polaris/advisor-core-api/biz/domain/memory"
	"github.com/xh-polaris/advisor-core-api/biz/domain/model"
	"github.com/xh-polaris/advisor-core-api/biz/infra/config"
	"github.com/xh-polaris/advisor-core-api/biz/infra/cst"
	"github.com/xh-polaris/advisor-core-api/biz/infra/mapper/conversation"
	"github.com/xh-polaris/advisor-core-api/biz/infra/mapper/message"
	"github.com/xh-polaris/advisor-core-api/pkg/errorx"
	"github.com/xh-polaris/advisor-core-api/pkg/lockx"
	"github.com/xh-polaris/advisor-core-api/pkg/logs"
	"github.com/xh-polaris/advisor-core-api/pkg/safego"
	"github.com/xh-polaris/advisor-core-api/types/errno"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatFlow 一轮对话的编排
// 记忆抽取与检索是尽力而为的增强路径, 失败只降级不阻断;
// 校验/对话定位/历史获取/落库/生成是主干路径, 失败即终止本轮
type ChatFlow struct {
	cfg           *config.Config
	conversations conversation.MongoMapper
	messages      message.MongoMapper
	memories      *memory.MemoryDomain
	generator     *model.GenerationDomain
	locks         *lockx.KeyedMutex
}

func NewChatFlow(
	cfg *config.Config,
	conversations conversation.MongoMapper,
	messages message.MongoMapper,
	memories *memory.MemoryDomain,
	generator *model.GenerationDomain,
) *ChatFlow {
	return &ChatFlow{
		cfg:           cfg,
		conversations: conversations,
		messages:      messages,
		memories:      memories,
		generator:     generator,
		locks:         lockx.NewKeyedMutex(),
	}
}

// ChatTurnResult 一轮对话的产出
type ChatTurnResult struct {
	ConversationId      string
	ConversationCreated bool
	UserMessage         *message.Message
	AssistantMessage    *message.Message
	MemoriesUsed        []*memory.Memory
	Refused             bool
}

// SendMessage 执行一轮对话
// cid为空或指向不存在的对话时静默新建; 指向他人对话时在任何落库前拒绝
func (f *ChatFlow) SendMessage(ctx context.Context, uid, cid, content string) (*ChatTurnResult, error) {
	// 1. 校验输入
	if err := f.validate(uid, content); err != nil {
		return nil, err
	}

	// 2. 定位或新建对话, 必须先于任何写入
	conv, created, err := f.getOrCreate(ctx, uid, cid)
	if err != nil {
		return nil, err
	}
	cid = conv.ConversationId.Hex()

	// 同一对话内整轮串行, 保证消息落库次序与轮次一致
	unlock := f.locks.Lock(cid)
	defer unlock()

	// 3. 保存用户消息并刷新计数, 计数必须与已落库消息一致
	userMsg := message.NewUserMessage(conv.ConversationId, conv.UserId, content)
	if err = f.messages.InsertOne(ctx, userMsg); err != nil {
		return nil, errorx.WrapByCode(err, errno.ChatPersistErrCode)
	}
	if err = f.touch(ctx, cid); err != nil {
		return nil, err
	}

	// 4. 记忆抽取, 尽力而为, 异步不回传
	extractCtx := context.WithoutCancel(ctx)
	safego.Go(extractCtx, func() {
		if _, err := f.memories.AddFromMessage(extractCtx, uid, content,
			map[string]any{cst.ConversationId: cid}); err != nil {
			logs.CtxErrorf(extractCtx, "[chat flow] memory extract degraded, err:%s", errorx.ErrorWithoutStack(err))
		}
	})

	// 5. 记忆检索, 失败降级为空
	used := f.memories.Search(ctx, uid, content, f.memories.TopK())

	// 6. 对话历史, 主干路径, 失败即终止
	// 刚落库的本轮输入不计入历史, 第7步会单独拼在末尾
	history, err := f.history(ctx, cid, userMsg.MessageId)
	if err != nil {
		return nil, err
	}

	// 7. 生成回复
	in := model.BuildMessages(used, history, content, f.cfg.Chat.ContextWindow)
	gen, err := f.generator.Generate(ctx, uid, in)
	if err != nil {
		if errors.Is(err, model.ErrRefused) {
			return nil, errorx.WrapByCode(err, errno.GenerationRefusedErrCode)
		}
		return nil, errorx.WrapByCode(err, errno.GenerationErrCode)
	}

	// 8. 保存模型回复并刷新计数
	asstMsg := message.NewAssistantMessage(conv.ConversationId, conv.UserId, gen.Content)
	if err = f.messages.InsertOne(ctx, asstMsg); err != nil {
		return nil, errorx.WrapByCode(err, errno.ChatPersistErrCode)
	}
	if err = f.touch(ctx, cid); err != nil {
		return nil, err
	}

	return &ChatTurnResult{
		ConversationId:      cid,
		ConversationCreated: created,
		UserMessage:         userMsg,
		AssistantMessage:    asstMsg,
		MemoriesUsed:        used,
		Refused:             gen.Refused,
	}, nil
}

func (f *ChatFlow) validate(uid, content string) error {
	if _, err := primitive.ObjectIDFromHex(uid); err != nil {
		return errorx.New(errno.ChatInvalidUserErrCode)
	}
	if strings.TrimSpace(content) == "" {
		return errorx.New(errno.ChatEmptyMessageErrCode)
	}
	if max := f.cfg.Chat.MaxMessageLength; len([]rune(content)) > max {
		return errorx.New(errno.ChatMessageTooLongErrCode, errorx.KVf("max", "%d", max))
	}
	return nil
}

// getOrCreate 定位对话; 不存在的id静默重建, 归属他人的id直接拒绝
func (f *ChatFlow) getOrCreate(ctx context.Context, uid, cid string) (conv *conversation.Conversation, created bool, err error) {
	if cid == "" {
		conv, err = f.conversations.CreateNewConversation(ctx, uid)
		return conv, true, errorx.WrapByCode(err, errno.ConversationCreateErrCode)
	}

	conv, err = f.conversations.FindOne(ctx, cid)
	switch {
	case err == nil:
		if conv.UserId.Hex() != uid {
			return nil, false, errorx.New(errno.ChatConversationOwnErrCode)
		}
		return conv, false, nil
	case errors.Is(err, conversation.ErrNotFound):
		logs.CtxInfof(ctx, "[chat flow] conversation %s not found, recreating", cid)
		conv, err = f.conversations.CreateNewConversation(ctx, uid)
		return conv, true, errorx.WrapByCode(err, errno.ConversationCreateErrCode)
	default:
		return nil, false, errorx.WrapByCode(err, errno.ConversationGetErrCode)
	}
}

// history 取最近的上下文窗口, 转为模型消息
func (f *ChatFlow) history(ctx context.Context, cid string, exclude primitive.ObjectID) ([]*schema.Message, error) {
	msgs, err := f.messages.RetrieveMessages(ctx, cid, f.cfg.Chat.ContextWindow)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ChatHistoryErrCode)
	}
	out := make([]*schema.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.MessageId == exclude {
			continue
		}
		switch message.RoleItoS[m.Role] {
		case cst.User:
			out = append(out, schema.UserMessage(m.Content))
		case cst.Assistant:
			out = append(out, schema.AssistantMessage(m.Content, nil))
		}
	}
	return out, nil
}

// touch 刷新对话计数与活跃时间
// message_count与已落库消息数一致是持久层约束, 刷新失败等同保存失败
func (f *ChatFlow) touch(ctx context.Context, cid string) error {
	if err := f.conversations.TouchConversation(ctx, cid, 1); err != nil {
		return errorx.WrapByCode(err, errno.ChatPersistErrCode)
	}
	return nil
}

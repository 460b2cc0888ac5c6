package message

import (
	"context"
	"errors"
	"time"

	"github.com/xh-polaris/advisor-core-api/biz/application/dto/basic"
	"github.com/xh-polaris/advisor-core-api/biz/infra/config"
	"github.com/xh-polaris/advisor-core-api/biz/infra/cst"
	"github.com/xh-polaris/advisor-core-api/biz/infra/util"
	"github.com/xh-polaris/advisor-core-api/pkg/errorx"
	"github.com/xh-polaris/advisor-core-api/pkg/logs"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var _ MongoMapper = (*mongoMapper)(nil)

const (
	collection = "message"
)

type MongoMapper interface {
	InsertOne(ctx context.Context, msg *Message) error
	RetrieveMessages(ctx context.Context, conversation string, size int) (msgs []*Message, err error)
	ListMessage(ctx context.Context, conversation string, page *basic.Page) (msgs []*Message, hasMore bool, err error)
}

type mongoMapper struct {
	conn *monc.Model
}

func NewMessageMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

// InsertOne 插入一条msg, 消息只追加不更新, 不走缓存
func (m *mongoMapper) InsertOne(ctx context.Context, msg *Message) error {
	_, err := m.conn.InsertOneNoCache(ctx, msg)
	return err
}

// RetrieveMessages 取出对话内时间最近的size条消息, 按时间升序返回, size为0则取出所有
func (m *mongoMapper) RetrieveMessages(ctx context.Context, conversation string, size int) (msgs []*Message, err error) {
	oid, err := primitive.ObjectIDFromHex(conversation)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.M{cst.CreateTime: -1})
	if size > 0 {
		opts.SetLimit(int64(size))
	}
	if err = m.conn.Find(ctx, &msgs, bson.M{cst.ConversationId: oid}, opts); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		logs.Errorf("[message mapper] find err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	// 倒序查出最近的, 再翻回时间升序
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// ListMessage 游标分页获取Message
func (m *mongoMapper) ListMessage(ctx context.Context, conversation string, page *basic.Page) (msgs []*Message, hasMore bool, err error) {
	ocid, err := primitive.ObjectIDFromHex(conversation)
	if err != nil {
		return nil, false, err
	}
	opts := options.Find().SetSort(bson.M{cst.Id: -1}).SetLimit(page.GetSize() + 1)
	filter := bson.M{cst.ConversationId: ocid}
	if page != nil && page.Cursor != nil { // 创建时间更小的
		cursor, err := primitive.ObjectIDFromHex(*page.Cursor)
		if err != nil {
			return nil, false, err
		}
		filter[cst.Id] = bson.M{cst.LT: cursor}
	}
	if err = m.conn.Find(ctx, &msgs, filter, opts); err != nil {
		logs.Errorf("[message mapper] find err:%s", errorx.ErrorWithoutStack(err))
		return nil, false, err
	}
	if hasMore = int64(len(msgs)) > page.GetSize(); hasMore {
		msgs = msgs[:page.GetSize()]
	}
	return msgs, hasMore, err
}

// NewUserMessage 构造一条用户消息
func NewUserMessage(cid, uid primitive.ObjectID, content string) *Message {
	return newMessage(cid, uid, RoleStoI[cst.User], content)
}

// NewAssistantMessage 构造一条模型消息
func NewAssistantMessage(cid, uid primitive.ObjectID, content string) *Message {
	return newMessage(cid, uid, RoleStoI[cst.Assistant], content)
}

func newMessage(cid, uid primitive.ObjectID, role int32, content string) *Message {
	return &Message{
		MessageId:      primitive.NewObjectID(),
		ConversationId: cid,
		UserId:         uid,
		Role:           role,
		Content:        content,
		TokenCount:     util.CountTokens(content),
		CreateTime:     time.Now(),
	}
}

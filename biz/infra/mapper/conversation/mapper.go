package conversation

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
)

var _ MongoMapper = (*mongoMapper)(nil)

// ErrNotFound 对话不存在, 调用方区分"不存在"和存储故障
var ErrNotFound = errors.New("conversation not found")

const (
	collection     = "conversation"
	cacheKeyPrefix = "cache:conversation:"
)

type MongoMapper interface {
	CreateNewConversation(ctx context.Context, uid string) (c *Conversation, err error)
	FindOne(ctx context.Context, cid string) (c *Conversation, err error)
	ListConversations(ctx context.Context, uid string, page *basic.Page) (cs []*Conversation, hasMore bool, err error)
	TouchConversation(ctx context.Context, cid string, delta int64) (err error)
}

type mongoMapper struct {
	conn *monc.Model
}

func NewConversationMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

// CreateNewConversation 创建并缓存一个新的对话
func (m *mongoMapper) CreateNewConversation(ctx context.Context, uid string) (c *Conversation, err error) {
	oid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		logs.Errorf("[conversation mapper] from hex err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}

	now := time.Now()
	c = &Conversation{
		ConversationId: primitive.NewObjectID(),
		UserId:         oid,
		Status:         cst.ConversationActive,
		MessageCount:   0,
		CreateTime:     now,
		LastActivity:   now,
	}

	_, err = m.conn.InsertOne(ctx, cacheKeyPrefix+c.ConversationId.Hex(), c)
	return c, err
}

// FindOne 按对话id查询, 不存在返回ErrNotFound
func (m *mongoMapper) FindOne(ctx context.Context, cid string) (c *Conversation, err error) {
	ocid, err := primitive.ObjectIDFromHex(cid)
	if err != nil {
		// 非法id与不存在同样处理, 上层会静默新建
		return nil, ErrNotFound
	}
	c = &Conversation{}
	if err = m.conn.FindOne(ctx, cacheKeyPrefix+cid, c, bson.M{cst.Id: ocid}); err != nil {
		if errors.Is(err, monc.ErrNotFound) || errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		logs.Errorf("[conversation mapper] find one err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return c, nil
}

// ListConversations 分页查询用户对话列表, 最近活跃优先
func (m *mongoMapper) ListConversations(ctx context.Context, uid string, page *basic.Page) (cs []*Conversation, hasMore bool, err error) {
	oid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		logs.Errorf("[conversation mapper] from hex err:%s", errorx.ErrorWithoutStack(err))
		return nil, false, err
	}

	var total int64
	opts := util.BuildFindOption(page).SetSort(bson.M{cst.LastActivity: -1})
	filter := bson.M{cst.UserId: oid, cst.Status: bson.M{cst.NE: cst.ConversationExpired}}
	if err = m.conn.Find(ctx, &cs, filter, opts); err != nil {
		return nil, false, err
	}
	if total, err = m.conn.CountDocuments(ctx, filter); err != nil {
		return nil, false, err
	}
	return cs, util.HasMore(total, page), err
}

// TouchConversation 原子地累加message_count并刷新last_activity
// message_count必须与消息落库同步推进, 保持与实际消息数一致
func (m *mongoMapper) TouchConversation(ctx context.Context, cid string, delta int64) (err error) {
	ocid, err := primitive.ObjectIDFromHex(cid)
	if err != nil {
		return err
	}
	_, err = m.conn.UpdateOne(ctx, cacheKeyPrefix+cid, bson.M{cst.Id: ocid},
		bson.M{cst.Inc: bson.M{cst.MessageCount: delta}, cst.Set: bson.M{cst.LastActivity: time.Now()}})
	return err
}

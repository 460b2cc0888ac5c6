package conversation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation 一次多轮对话
// 永不物理删除, 归档/过期由外部保留策略负责, 这里只建模状态流转
type Conversation struct {
	ConversationId primitive.ObjectID `json:"conversation_id" bson:"_id"`
	UserId         primitive.ObjectID `json:"user_id" bson:"user_id"`
	Status         string             `json:"status" bson:"status"` // active/archived/expired
	MessageCount   int64              `json:"message_count" bson:"message_count"`
	CreateTime     time.Time          `json:"create_time" bson:"create_time"`
	LastActivity   time.Time          `json:"last_activity" bson:"last_activity"`
}

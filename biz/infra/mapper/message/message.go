package message

import (
	"time"

	"github.com/xh-polaris/advisor-core-api/biz/infra/cst"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	RoleStoI = map[string]int32{cst.System: 0, cst.Assistant: 1, cst.User: 2}
	RoleItoS = map[int32]string{0: cst.System, 1: cst.Assistant, 2: cst.User}
)

// Message 一条消息, 归属于用户或模型
// 落库后不可变, 按创建时间在对话内排序, 只追加
type Message struct {
	MessageId      primitive.ObjectID `json:"message_id" bson:"_id"`                  // 主键
	ConversationId primitive.ObjectID `json:"conversation_id" bson:"conversation_id"` // 归属的对话id
	UserId         primitive.ObjectID `json:"user_id" bson:"user_id"`                 // 用户id
	Role           int32              `json:"role" bson:"role"`                       // 角色, system/assistant/user, 依次为0,1,2
	Content        string             `json:"content" bson:"content"`                 // 消息内容
	TokenCount     int32              `json:"token_count" bson:"token_count"`         // 空白分词近似的token数
	CreateTime     time.Time          `json:"create_time" bson:"create_time"`         // 创建时间
}

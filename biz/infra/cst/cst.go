package cst

const (
	// Assistant is the role of an assistant, means the message is returned by ChatModel.
	Assistant = "assistant"
	// User is the role of a user, means the message is a user message.
	User = "user"
	// System is the role of a system, means the message is a system message.
	System = "system"
)

// 对话状态
const (
	ConversationActive   = "active"
	ConversationArchived = "archived"
	ConversationExpired  = "expired"
)

// 记忆元数据键
const (
	MetaCategory = "category"
	MetaSource   = "source"
	MetaUserId   = "user_id"
)

// mapper层字段枚举
const (
	Id             = "_id"
	ConversationId = "conversation_id"
	UserId         = "user_id"
	Role           = "role"
	CreateTime     = "create_time"
	LastActivity   = "last_activity"
	MessageCount   = "message_count"

	Status = "status"

	NE  = "$ne"
	LT  = "$lt"
	Set = "$set"
	Inc = "$inc"
)

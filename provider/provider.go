package provider

import (
	"github.com/google/wire"
	"github.com/xh-polaris/advisor-core-api/biz/application/service"
	"github.com/xh-polaris/advisor-core-api/biz/domain/flow"
	"github.com/xh-polaris/advisor-core-api/biz/domain/memory"
	"github.com/xh-polaris/advisor-core-api/biz/domain/model"
	"github.com/xh-polaris/advisor-core-api/biz/infra/config"
	"github.com/xh-polaris/advisor-core-api/biz/infra/mapper/conversation"
	"github.com/xh-polaris/advisor-core-api/biz/infra/mapper/message"
	"github.com/xh-polaris/advisor-core-api/biz/infra/memstore"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config              *config.Config
	ChatService         service.IChatService
	ConversationService service.IConversationService
	MemoryService       service.IMemoryService
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.ChatServiceSet,
	service.ConversationServiceSet,
	service.MemoryServiceSet,
)

var DomainSet = wire.NewSet(
	flow.NewChatFlow,
	memory.NewMemoryDomain,
	model.NewGenerationDomain,
)

var InfraSet = wire.NewSet(
	config.NewConfig,
	conversation.NewConversationMongoMapper,
	message.NewMessageMongoMapper,
	memstore.NewStore,
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	DomainSet,
	InfraSet,
)

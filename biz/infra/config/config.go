package config

import (
	"os"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
)

var config *Config

type Auth struct {
	SecretKey    string
	PublicKey    string
	AccessExpire int64
	// 本地联调用的直通token, 生产配置留空
	DevToken  string `json:",optional"`
	DevUserId string `json:",optional"`
}

type Mongo struct {
	URL string
	DB  string
}

// Gemini 生成模型配置, 走openai兼容网关时填BaseURL
type Gemini struct {
	APIKey  string
	BaseURL string `json:",optional"`
	Model   string `json:",default=gemini-2.0-flash"`
}

// OpenAI 兼容模型配置, 作为gemini之外的备选注册模型
type OpenAI struct {
	APIKey  string `json:",optional"`
	BaseURL string `json:",optional"`
	Model   string `json:",optional"`
}

// Memory 记忆存储配置
// Provider为mem0时走HTTP服务, 为chromem时使用内嵌向量库
type Memory struct {
	Provider string `json:",default=mem0,options=mem0|chromem"`
	// mem0 服务
	BaseURL string `json:",optional"`
	APIKey  string `json:",optional"`
	// chromem 内嵌存储
	Path           string `json:",default=./data/memory"`
	EmbedderAPIKey string `json:",optional"`
	EmbedderURL    string `json:",optional"`
	EmbedderModel  string `json:",default=text-embedding-3-small"`
	TopK           int    `json:",default=5"`
}

// 安全拒答策略取值
const (
	SafetyPolicyContinue = "continue"
	SafetyPolicyFail     = "fail"
)

// Chat 对话编排配置
type Chat struct {
	ContextWindow    int `json:",default=10"`
	MaxMessageLength int `json:",default=10000"`
	// 安全拒答策略: continue使用兜底文案继续, fail向调用方返回错误
	SafetyPolicy string  `json:",default=continue,options=continue|fail"`
	FallbackText string  `json:",default=抱歉，這個問題我無法回答，我們聊點投資相關的話題吧。"`
	Temperature  float32 `json:",default=0.7"`
	MaxTokens    int     `json:",default=500"`
}

type Config struct {
	service.ServiceConf
	ListenOn string
	Auth     Auth
	Mongo    Mongo
	Cache    cache.CacheConf `json:",optional"`
	Gemini   Gemini
	OpenAI   OpenAI `json:",optional"`
	Memory   Memory
	Chat     Chat
}

func NewConfig() (*Config, error) {
	c := new(Config)
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "etc/config.yaml"
	}
	err := conf.Load(path, c)
	if err != nil {
		return nil, err
	}
	err = c.SetUp()
	if err != nil {
		return nil, err
	}
	config = c
	return config, nil
}

func GetConfig() *Config {
	return config
}

// SetForTest 测试用, 直接注入配置
func SetForTest(c *Config) {
	config = c
}

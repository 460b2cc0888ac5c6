package core_api

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	hertz "github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/xh-polaris/advisor-core-api/provider"
)

// Health 存活探针
// @router /health [GET]
func Health(_ context.Context, c *app.RequestContext) {
	c.JSON(hertz.StatusOK, map[string]any{"status": "ok"})
}

// Ready 就绪探针, 检查配置层面的依赖是否齐备
// 深度探活(mongo ping/记忆服务连通性)交给部署侧的独立探测
// @router /health/ready [GET]
func Ready(_ context.Context, c *app.RequestContext) {
	p := provider.Get()
	if p == nil {
		c.JSON(hertz.StatusServiceUnavailable, map[string]any{"status": "not ready"})
		return
	}

	cfg := p.Config
	checks := map[string]bool{
		"mongo_configured": cfg.Mongo.URL != "",
		"model_configured": cfg.Gemini.APIKey != "" || cfg.OpenAI.APIKey != "",
		"memory_configured": cfg.Memory.Provider == "chromem" ||
			(cfg.Memory.Provider == "mem0" && cfg.Memory.BaseURL != ""),
	}
	status, code := "ready", hertz.StatusOK
	for _, ok := range checks {
		if !ok {
			status, code = "not ready", hertz.StatusServiceUnavailable
			break
		}
	}
	c.JSON(code, map[string]any{"status": status, "checks": checks})
}

package main

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/hertz-contrib/cors"
	prometheus "github.com/hertz-contrib/monitor-prometheus"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/xh-polaris/advisor-core-api/biz/adaptor/controller/core_api"
	"github.com/xh-polaris/advisor-core-api/provider"
	_ "github.com/xh-polaris/advisor-core-api/types/errno"
)

func main() {
	provider.Init()
	c := provider.Get().Config

	tracer, cfg := hertztracing.NewServerTracer()
	h := server.Default(
		server.WithHostPorts(c.ListenOn),
		server.WithTracer(prometheus.NewServerTracer(":9091", "/metrics")),
		tracer,
	)
	h.Use(hertztracing.ServerMiddleware(cfg))
	h.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	register(h)
	h.Spin()
}

func register(h *server.Hertz) {
	api := h.Group("/api/v1")
	api.GET("/health", core_api.Health)
	api.GET("/health/ready", core_api.Ready)

	chat := api.Group("/chat")
	chat.POST("/send_message", core_api.SendMessage)

	conv := api.Group("/conversation")
	conv.POST("/create", core_api.CreateConversation)
	conv.POST("/list", core_api.ListConversation)
	conv.GET("/get", core_api.GetConversation)
	conv.POST("/messages", core_api.ListMessage)

	mem := api.Group("/memory")
	mem.GET("/list", core_api.ListMemory)
	mem.POST("/search", core_api.SearchMemory)
	mem.POST("/batch_delete", core_api.BatchDeleteMemory)
	mem.GET("/:memory_id", core_api.GetMemory)
	mem.PUT("/:memory_id", core_api.UpdateMemory)
	mem.DELETE("/:memory_id", core_api.DeleteMemory)
}

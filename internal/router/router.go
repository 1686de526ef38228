package router

import (
	"github.com/gin-gonic/gin"

	"github.com/kai-platform/kai-backend/internal/config"
	"github.com/kai-platform/kai-backend/internal/handler"
	"github.com/kai-platform/kai-backend/internal/middleware"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Chat 会话操作，要求认证
		chats := v1.Group("/chat", middleware.RequireAuth(cfg.Auth.JWTSecret))
		{
			chats.POST("/sessions", h.Chat.CreateSession)
			chats.GET("/sessions/:id", h.Chat.ReopenSession)
			chats.POST("/sessions/:id/messages", h.Chat.SendMessage)
			chats.GET("/history", h.Chat.FetchHistory)
		}
	}

	// Tool 工具调用，multipart 上传
	r.POST("/api/tool/", h.Tool.Invoke)

	return r
}

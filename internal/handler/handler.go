package handler

import (
	"github.com/kai-platform/kai-backend/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Chat *ChatHandler
	Tool *ToolHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Chat: NewChatHandler(svc),
		Tool: NewToolHandler(svc),
	}
}

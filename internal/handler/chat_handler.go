package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kai-platform/kai-backend/internal/middleware"
	"github.com/kai-platform/kai-backend/internal/model"
	"github.com/kai-platform/kai-backend/internal/service"
	"github.com/kai-platform/kai-backend/internal/service/chat"
)

// ChatHandler 会话处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建会话处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// CreateSession 创建会话
func (h *ChatHandler) CreateSession(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var req chat.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	session, err := h.svc.Chat.CreateSession(c.Request.Context(), caller.ID, &req)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, session.View())
}

// SendMessage 向会话追加一个对话轮次
func (h *ChatHandler) SendMessage(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Message model.Message `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	if err := h.svc.Chat.AppendTurn(c.Request.Context(), id, req.Message); err != nil {
		Error(c, err)
		return
	}

	SuccessStatus(c)
}

// ReopenSession 重开会话，返回完整会话内容
func (h *ChatHandler) ReopenSession(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	id := c.Param("id")

	view, err := h.svc.Chat.ReopenSession(c.Request.Context(), id, caller.ID)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, view)
}

// FetchHistory 查询当前用户的会话历史摘要
func (h *ChatHandler) FetchHistory(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	summaries, err := h.svc.History.FetchHistory(c.Request.Context(), caller.ID)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, summaries)
}

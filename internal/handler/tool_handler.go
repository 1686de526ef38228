package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kai-platform/kai-backend/internal/apperr"
	"github.com/kai-platform/kai-backend/internal/service"
)

// ToolHandler 工具调用处理器
type ToolHandler struct {
	svc *service.Services
}

// NewToolHandler 创建工具调用处理器
func NewToolHandler(svc *service.Services) *ToolHandler {
	return &ToolHandler{svc: svc}
}

// Invoke 处理带文件上传的工具调用。失败不抛出到传输层之外，
// 统一降级为 {success:false, message} 信封
func (h *ToolHandler) Invoke(c *gin.Context) {
	reader, err := c.Request.MultipartReader()
	if err != nil {
		ToolFailure(c, apperr.New(apperr.InvalidArgument, "expected multipart request"))
		return
	}

	result, err := h.svc.Tool.Invoke(c.Request.Context(), reader)
	if err != nil {
		ToolFailure(c, err)
		return
	}

	ToolSuccess(c, result)
}

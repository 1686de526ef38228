package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kai-platform/kai-backend/internal/apperr"
)

// Response 可调用操作的统一响应
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应 (200)
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Status: "success", Data: data})
}

// SuccessStatus 无数据的成功响应 (200)
func SuccessStatus(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Status: "success"})
}

// Created 创建成功响应 (201)
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Status: "created", Data: data})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Status: "error", Message: message})
}

// Error 按错误类别返回相应的错误响应，未分类错误一律按
// Internal 处理且不泄露原始错误文本
func Error(c *gin.Context, err error) {
	if err == nil {
		return
	}
	message := apperr.MessageOf(err, "an unexpected error occurred")
	c.JSON(statusCode(apperr.KindOf(err)), Response{Status: "error", Message: message})
}

func statusCode(kind apperr.Kind) int {
	switch kind {
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.InvalidArgument:
		return http.StatusBadRequest
	case apperr.PermissionDenied:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ToolResponse 工具调用端点的响应信封，该端点的传输层不携带
// 结构化错误类别，失败降级为 {success:false, message}
type ToolResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ToolSuccess 工具调用成功响应
func ToolSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, ToolResponse{Success: true, Data: data})
}

// ToolFailure 工具调用失败响应
func ToolFailure(c *gin.Context, err error) {
	message := apperr.MessageOf(err, "error processing request")
	c.JSON(http.StatusInternalServerError, ToolResponse{Success: false, Message: message})
}

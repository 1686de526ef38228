// Package gateway 是唯一允许调用外部 Kai AI 服务的组件
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kai-platform/kai-backend/internal/apperr"
	"github.com/kai-platform/kai-backend/internal/config"
	"github.com/kai-platform/kai-backend/internal/model"
)

// Result 规范化的 AI 服务结果，Data 为远端响应体原文，
// 网关不解释顶层信封之外的形状
type Result struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Client Kai AI 服务客户端。单次阻塞调用，不内置重试，
// 重试策略由调用方决定
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient 创建 AI 服务客户端
func NewClient(cfg *config.AIConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Send 发送载荷并返回规范化结果。非 2xx 或网络失败时提取远端
// 错误信封中的 message 作为 Internal 错误返回；信封本身损坏时
// 返回通用内部错误
func (c *Client) Send(ctx context.Context, payload Payload) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to encode AI request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to build AI request", err)
	}
	req.Header.Set("API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "AI service request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to read AI response", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, remoteError(resp.StatusCode, respBody)
	}

	return &Result{Status: "success", Data: respBody}, nil
}

// remoteError 从远端错误信封中提取 message
func remoteError(statusCode int, body []byte) error {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return apperr.New(apperr.Internal, envelope.Message)
	}
	return apperr.New(apperr.Internal, fmt.Sprintf("AI service returned status %d", statusCode))
}

// ReplyMessages 从结果的 data 字段解出回复消息，兼容单条对象
// 与数组两种形状。消息不携带可信时间戳，由调用方重新分配
func (r *Result) ReplyMessages() ([]model.Message, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(r.Data, &envelope); err != nil {
		return nil, fmt.Errorf("malformed AI response body: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil, nil
	}

	var replies []model.Message
	if err := json.Unmarshal(envelope.Data, &replies); err == nil {
		return replies, nil
	}

	var single model.Message
	if err := json.Unmarshal(envelope.Data, &single); err != nil {
		return nil, fmt.Errorf("malformed AI reply: %w", err)
	}
	return []model.Message{single}, nil
}

// Package chat 管理聊天会话的生命周期：创建、追加对话轮次、重开
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kai-platform/kai-backend/internal/apperr"
	"github.com/kai-platform/kai-backend/internal/model"
	"github.com/kai-platform/kai-backend/internal/repository"
	"github.com/kai-platform/kai-backend/internal/service/gateway"
)

// 截断策略常量：消息数超过阈值时只保留最近的窗口，
// 限制单次请求载荷与存储增长，不可由用户配置
const (
	truncateThreshold = 100
	retainWindow      = 65
)

// Gateway AI 网关依赖
type Gateway interface {
	Send(ctx context.Context, payload gateway.Payload) (*gateway.Result, error)
}

// Invalidator 历史摘要缓存失效依赖
type Invalidator interface {
	Invalidate(ctx context.Context, userID string)
}

// Service 会话生命周期服务
type Service struct {
	store repository.SessionStore
	gw    Gateway
	cache Invalidator
}

// NewService 创建会话生命周期服务，cache 可为 nil
func NewService(store repository.SessionStore, gw Gateway, cache Invalidator) *Service {
	return &Service{store: store, gw: gw, cache: cache}
}

// CreateSessionRequest 创建会话请求
type CreateSessionRequest struct {
	User    model.User    `json:"user"`
	Message model.Message `json:"message"`
	Type    model.BotType `json:"type"`
}

// CreateSession 创建会话：持久化首条消息，调用 AI 网关，
// 合并回复后返回完整会话。前置条件按顺序检查：未认证、
// 字段缺失、消息格式错误、类型非法、身份不匹配
func (s *Service) CreateSession(ctx context.Context, callerID string, req *CreateSessionRequest) (*model.ChatSession, error) {
	if callerID == "" {
		return nil, apperr.New(apperr.Unauthenticated, "user must be authenticated to create a chat session")
	}
	if req == nil || req.User.ID == "" || req.Type == "" {
		return nil, apperr.New(apperr.InvalidArgument, "missing required fields")
	}
	if strings.TrimSpace(req.Message.Content) == "" {
		return nil, apperr.New(apperr.InvalidArgument, "invalid message format")
	}
	if !req.Type.Valid() {
		return nil, apperr.New(apperr.InvalidArgument, "invalid bot type")
	}
	if req.User.ID != callerID {
		return nil, apperr.New(apperr.PermissionDenied, "user ID does not match authenticated user")
	}

	now := time.Now().UTC()
	initial := req.Message
	initial.Timestamp = now
	if initial.Role == "" {
		initial.Role = model.RoleHuman
	}
	if initial.Type == "" {
		initial.Type = model.MessageTypeText
	}

	session := &model.ChatSession{
		User:      req.User,
		Type:      req.Type,
		Messages:  []model.Message{initial},
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.store.CreateSession(ctx, session)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to create chat session", err)
	}
	session.ID = id

	result, err := s.gw.Send(ctx, gateway.NewChatPayload(session.User, session.Type, session.Messages))
	if err != nil {
		return nil, apperr.EnsureInternal(err, "AI service call failed")
	}

	replies, err := result.ReplyMessages()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to decode AI reply", err)
	}

	session.Messages = appendStamped(session.Messages, replies)
	session.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateMessages(ctx, session.ID, session.Messages, session.UpdatedAt); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to save AI reply", err)
	}

	s.invalidate(ctx, session.User.ID)
	return session, nil
}

// AppendTurn 追加一个对话轮次：为用户消息分配服务端时间戳，
// 应用截断策略，持久化，调用 AI 网关，再持久化回复。
// 两次写之间的崩溃会留下没有回复的用户轮次，这是接受的语义
func (s *Service) AppendTurn(ctx context.Context, id string, message model.Message) error {
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return apperr.New(apperr.NotFound, "chat session not found")
		}
		return apperr.Wrap(apperr.Internal, "failed to load chat session", err)
	}

	messages := session.Messages
	if len(messages) > truncateThreshold {
		messages = messages[len(messages)-retainWindow:]
	}

	now := time.Now().UTC()
	message.Timestamp = now
	if message.Role == "" {
		message.Role = model.RoleHuman
	}
	messages = append(messages, message)

	if err := s.store.UpdateMessages(ctx, id, messages, now); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to save message", err)
	}

	result, err := s.gw.Send(ctx, gateway.NewChatPayload(session.User, session.Type, messages))
	if err != nil {
		return apperr.EnsureInternal(err, "AI service call failed")
	}

	replies, err := result.ReplyMessages()
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to decode AI reply", err)
	}

	messages = appendStamped(messages, replies)
	if err := s.store.UpdateMessages(ctx, id, messages, time.Now().UTC()); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to save AI reply", err)
	}

	s.invalidate(ctx, session.User.ID)
	return nil
}

// ReopenSession 只读返回完整会话，消息时间戳规范化为字符串形式
func (s *Service) ReopenSession(ctx context.Context, id, callerID string) (*model.SessionView, error) {
	if callerID == "" {
		return nil, apperr.New(apperr.Unauthenticated, "user must be authenticated to reopen a chat session")
	}
	if id == "" {
		return nil, apperr.New(apperr.InvalidArgument, "missing chat session id")
	}

	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, apperr.New(apperr.NotFound, "chat session not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to load chat session", err)
	}

	if session.User.ID != callerID {
		return nil, apperr.New(apperr.PermissionDenied, "you do not have permission to access this chat session")
	}

	return session.View(), nil
}

// appendStamped 为网关回复分配新的服务端时间戳后追加，
// 回复中自带的时间戳一律覆盖
func appendStamped(messages, replies []model.Message) []model.Message {
	now := time.Now().UTC()
	for _, reply := range replies {
		reply.Timestamp = now
		if reply.Role == "" {
			reply.Role = model.RoleAssistant
		}
		messages = append(messages, reply)
	}
	return messages
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}

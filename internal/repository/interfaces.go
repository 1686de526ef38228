package repository

import (
	"context"
	"time"

	"github.com/kai-platform/kai-backend/internal/model"
)

// SessionStore 会话文档存储接口，服务层通过该接口访问存储，
// 测试中以内存实现替换
type SessionStore interface {
	// CreateSession 持久化新会话并返回存储分配的 id
	CreateSession(ctx context.Context, session *model.ChatSession) (string, error)
	// GetSession 按 id 读取会话，不存在时返回 ErrSessionNotFound
	GetSession(ctx context.Context, id string) (*model.ChatSession, error)
	// UpdateMessages 覆写会话的消息列表并刷新 updatedAt
	UpdateMessages(ctx context.Context, id string, messages []model.Message, updatedAt time.Time) error
	// ListByUser 查询某用户的全部会话，ordered 为真时按 updatedAt 降序
	ListByUser(ctx context.Context, userID string, ordered bool) ([]*model.ChatSession, error)
}

// Package testutil 提供测试辅助工具
package testutil

import (
	"fmt"
	"time"

	"github.com/kai-platform/kai-backend/internal/model"
)

// NewUser 构造测试用户
func NewUser(id string) model.User {
	return model.User{
		ID:       id,
		FullName: "Test User " + id,
		Email:    fmt.Sprintf("%s@example.com", id),
	}
}

// NewTextMessage 构造文本消息
func NewTextMessage(role model.Role, content string, ts time.Time) model.Message {
	return model.Message{
		Role:      role,
		Type:      model.MessageTypeText,
		Content:   content,
		Timestamp: ts,
	}
}

// NewSession 构造带 n 条交替消息的测试会话
func NewSession(id string, user model.User, n int) *model.ChatSession {
	base := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	messages := make([]model.Message, 0, n)
	for i := 0; i < n; i++ {
		role := model.RoleHuman
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		messages = append(messages, NewTextMessage(role, fmt.Sprintf("message %d", i), base.Add(time.Duration(i)*time.Second)))
	}
	return &model.ChatSession{
		ID:        id,
		User:      user,
		Type:      model.BotTypeChat,
		Messages:  messages,
		CreatedAt: base,
		UpdatedAt: base.Add(time.Duration(n) * time.Second),
	}
}

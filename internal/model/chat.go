package model

import "time"

// User 会话归属用户，来自认证令牌的声明，创建后不可变
type User struct {
	ID       string `bson:"id" json:"id"`
	FullName string `bson:"fullName" json:"fullName"`
	Email    string `bson:"email" json:"email"`
}

// BotType 机器人/会话类型，封闭集合
type BotType string

const (
	BotTypeChat BotType = "chat"
	BotTypeTool BotType = "tool"
)

// Valid 判断类型是否属于已识别集合
func (t BotType) Valid() bool {
	switch t {
	case BotTypeChat, BotTypeTool:
		return true
	}
	return false
}

// Role 消息角色
type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// MessageType 消息内容种类
type MessageType string

const (
	MessageTypeText       MessageType = "text"
	MessageTypeStructured MessageType = "structured"
)

// Message 会话消息，时间戳始终由服务端分配
type Message struct {
	Role      Role                   `bson:"role" json:"role"`
	Type      MessageType            `bson:"type" json:"type"`
	Content   string                 `bson:"content,omitempty" json:"content,omitempty"`
	Payload   map[string]interface{} `bson:"payload,omitempty" json:"payload,omitempty"`
	Timestamp time.Time              `bson:"timestamp" json:"timestamp"`
}

// ChatSession 聊天会话文档
type ChatSession struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	User      User      `bson:"user" json:"user"`
	Type      BotType   `bson:"type" json:"type"`
	Messages  []Message `bson:"messages" json:"messages"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// MessageView 线上传输形式的消息，时间戳为 RFC 3339 字符串
type MessageView struct {
	Role      Role                   `json:"role"`
	Type      MessageType            `json:"type"`
	Content   string                 `json:"content,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// View 转换为线上传输形式
func (m Message) View() MessageView {
	return MessageView{
		Role:      m.Role,
		Type:      m.Type,
		Content:   m.Content,
		Payload:   m.Payload,
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

// SessionView 线上传输形式的会话
type SessionView struct {
	ID        string        `json:"id"`
	User      User          `json:"user"`
	Type      BotType       `json:"type"`
	Messages  []MessageView `json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// View 转换为线上传输形式
func (s *ChatSession) View() *SessionView {
	messages := make([]MessageView, 0, len(s.Messages))
	for _, m := range s.Messages {
		messages = append(messages, m.View())
	}
	return &SessionView{
		ID:        s.ID,
		User:      s.User,
		Type:      s.Type,
		Messages:  messages,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// NoMessagesSentinel 历史摘要无消息时的占位文本
const NoMessagesSentinel = "No messages"

// HistorySummary 会话列表视图的精简投影，不携带完整消息数组
type HistorySummary struct {
	ID           string  `json:"id"`
	LastMessage  string  `json:"lastMessage"`
	Timestamp    *string `json:"timestamp"`
	User         User    `json:"user"`
	MessageCount int     `json:"messageCount"`
	Type         BotType `json:"type"`
}

// Summarize 将会话压缩为历史摘要
func (s *ChatSession) Summarize() HistorySummary {
	summary := HistorySummary{
		ID:           s.ID,
		LastMessage:  NoMessagesSentinel,
		User:         s.User,
		MessageCount: len(s.Messages),
		Type:         s.Type,
	}
	if summary.Type == "" {
		summary.Type = BotTypeChat
	}
	if len(s.Messages) > 0 {
		summary.LastMessage = s.Messages[len(s.Messages)-1].Content
	}
	if !s.UpdatedAt.IsZero() {
		ts := s.UpdatedAt.UTC().Format(time.RFC3339Nano)
		summary.Timestamp = &ts
	}
	return summary
}

// Package model 数据模型单元测试
package model

import (
	"sort"
	"testing"
	"time"
)

func TestBotTypeValid(t *testing.T) {
	tests := []struct {
		typ  BotType
		want bool
	}{
		{BotTypeChat, true},
		{BotTypeTool, true},
		{BotType("unknown"), false},
		{BotType(""), false},
	}

	for _, tt := range tests {
		if got := tt.typ.Valid(); got != tt.want {
			t.Errorf("BotType(%q).Valid() = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestSessionView(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	session := &ChatSession{
		ID:   "session-1",
		User: User{ID: "user-1"},
		Type: BotTypeChat,
		Messages: []Message{
			{Role: RoleHuman, Type: MessageTypeText, Content: "hello", Timestamp: base},
			{Role: RoleAssistant, Type: MessageTypeText, Content: "hi", Timestamp: base.Add(time.Second)},
			{Role: RoleHuman, Type: MessageTypeText, Content: "more", Timestamp: base.Add(2 * time.Second)},
		},
		CreatedAt: base,
		UpdatedAt: base.Add(2 * time.Second),
	}

	view := session.View()
	if len(view.Messages) != 3 {
		t.Fatalf("Messages = %d, want 3", len(view.Messages))
	}

	// 时间戳必须是合法的 RFC 3339 字符串，且字符串排序与创建顺序一致
	parsed := make([]time.Time, 0, len(view.Messages))
	raw := make([]string, 0, len(view.Messages))
	for _, m := range view.Messages {
		ts, err := time.Parse(time.RFC3339Nano, m.Timestamp)
		if err != nil {
			t.Fatalf("timestamp %q is not RFC 3339: %v", m.Timestamp, err)
		}
		parsed = append(parsed, ts)
		raw = append(raw, m.Timestamp)
	}
	if !sort.StringsAreSorted(raw) {
		t.Errorf("string timestamps not sorted in creation order: %v", raw)
	}
	for i := 1; i < len(parsed); i++ {
		if parsed[i].Before(parsed[i-1]) {
			t.Errorf("parsed timestamps out of order at %d", i)
		}
	}
}

func TestSummarize(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name        string
		session     *ChatSession
		wantLast    string
		wantCount   int
		wantType    BotType
		wantNilTime bool
	}{
		{
			name: "session with messages",
			session: &ChatSession{
				ID:   "s1",
				Type: BotTypeChat,
				Messages: []Message{
					{Content: "first", Timestamp: base},
					{Content: "last", Timestamp: base.Add(time.Second)},
				},
				UpdatedAt: base.Add(time.Second),
			},
			wantLast:  "last",
			wantCount: 2,
			wantType:  BotTypeChat,
		},
		{
			name:        "empty session",
			session:     &ChatSession{ID: "s2", Type: BotTypeChat},
			wantLast:    NoMessagesSentinel,
			wantCount:   0,
			wantType:    BotTypeChat,
			wantNilTime: true,
		},
		{
			name:        "missing type defaults to chat",
			session:     &ChatSession{ID: "s3"},
			wantLast:    NoMessagesSentinel,
			wantCount:   0,
			wantType:    BotTypeChat,
			wantNilTime: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := tt.session.Summarize()
			if summary.LastMessage != tt.wantLast {
				t.Errorf("LastMessage = %q, want %q", summary.LastMessage, tt.wantLast)
			}
			if summary.MessageCount != tt.wantCount {
				t.Errorf("MessageCount = %d, want %d", summary.MessageCount, tt.wantCount)
			}
			if summary.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", summary.Type, tt.wantType)
			}
			if tt.wantNilTime && summary.Timestamp != nil {
				t.Errorf("Timestamp = %v, want nil", *summary.Timestamp)
			}
			if !tt.wantNilTime {
				if summary.Timestamp == nil {
					t.Fatal("Timestamp is nil")
				}
				if _, err := time.Parse(time.RFC3339Nano, *summary.Timestamp); err != nil {
					t.Errorf("Timestamp %q is not RFC 3339: %v", *summary.Timestamp, err)
				}
			}
		})
	}
}

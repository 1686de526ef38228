package gateway

import (
	"encoding/json"

	"github.com/kai-platform/kai-backend/internal/model"
)

// Payload 出站请求载荷。type 为判别式的标签联合：
// 工具调用携带 tool_data，其余类型携带 messages
type Payload struct {
	user     model.User
	botType  model.BotType
	messages []model.Message
	toolData *model.ToolData
}

// NewChatPayload 构造会话载荷
func NewChatPayload(user model.User, botType model.BotType, messages []model.Message) Payload {
	return Payload{user: user, botType: botType, messages: messages}
}

// NewToolPayload 构造工具调用载荷，type 固定为 tool
func NewToolPayload(user model.User, toolData *model.ToolData) Payload {
	return Payload{user: user, botType: model.BotTypeTool, toolData: toolData}
}

// IsTool 判断是否为工具调用载荷
func (p Payload) IsTool() bool {
	return p.toolData != nil
}

// MarshalJSON 按判别式输出 {user,type,tool_data} 或 {user,type,messages}
func (p Payload) MarshalJSON() ([]byte, error) {
	if p.IsTool() {
		return json.Marshal(struct {
			User     model.User      `json:"user"`
			Type     model.BotType   `json:"type"`
			ToolData *model.ToolData `json:"tool_data"`
		}{p.user, p.botType, p.toolData})
	}
	messages := p.messages
	if messages == nil {
		messages = []model.Message{}
	}
	return json.Marshal(struct {
		User     model.User      `json:"user"`
		Type     model.BotType   `json:"type"`
		Messages []model.Message `json:"messages"`
	}{p.user, p.botType, messages})
}

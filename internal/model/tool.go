package model

import (
	"encoding/json"
	"fmt"
)

// ToolInputFiles 注入上传文件列表时使用的保留输入名
const ToolInputFiles = "files"

// ToolInput 工具调用的命名输入值
type ToolInput struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// UploadedFile 上传产物，由摄取管道写入对象存储后生成
type UploadedFile struct {
	FilePath string `json:"filePath"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// ToolData 工具调用载荷，客户端可能携带此处未建模的字段，
// 这些字段原样转发给 AI 服务
type ToolData struct {
	ToolID string
	Inputs []ToolInput
	Extra  map[string]json.RawMessage
}

// UnmarshalJSON 解析已知字段，未识别字段保留在 Extra 中
func (d *ToolData) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields["tool_id"]; ok {
		if err := json.Unmarshal(raw, &d.ToolID); err != nil {
			return fmt.Errorf("invalid tool_id: %w", err)
		}
		delete(fields, "tool_id")
	}
	if raw, ok := fields["inputs"]; ok {
		if err := json.Unmarshal(raw, &d.Inputs); err != nil {
			return fmt.Errorf("invalid inputs: %w", err)
		}
		delete(fields, "inputs")
	}
	if len(fields) > 0 {
		d.Extra = fields
	}
	return nil
}

// MarshalJSON 输出已知字段并合并 Extra
func (d ToolData) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(d.Extra)+2)
	for k, v := range d.Extra {
		fields[k] = v
	}
	toolID, err := json.Marshal(d.ToolID)
	if err != nil {
		return nil, err
	}
	fields["tool_id"] = toolID
	inputs := d.Inputs
	if inputs == nil {
		inputs = []ToolInput{}
	}
	encoded, err := json.Marshal(inputs)
	if err != nil {
		return nil, err
	}
	fields["inputs"] = encoded
	return json.Marshal(fields)
}

// ToolRequest 工具调用控制字段的完整载荷：tool_data 之外的字段
// 允许存在（容忍客户端版本偏差），解析后不参与转发
type ToolRequest struct {
	ToolData ToolData
	User     User
	Extra    map[string]json.RawMessage
}

// UnmarshalJSON 解析控制字段 JSON
func (r *ToolRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	raw, ok := fields["tool_data"]
	if !ok {
		return fmt.Errorf("missing tool_data")
	}
	if err := json.Unmarshal(raw, &r.ToolData); err != nil {
		return fmt.Errorf("invalid tool_data: %w", err)
	}
	delete(fields, "tool_data")
	if raw, ok := fields["user"]; ok {
		if err := json.Unmarshal(raw, &r.User); err != nil {
			return fmt.Errorf("invalid user: %w", err)
		}
		delete(fields, "user")
	}
	if len(fields) > 0 {
		r.Extra = fields
	}
	return nil
}

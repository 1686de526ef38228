package model

import (
	"encoding/json"
	"testing"
)

func TestToolRequestUnmarshal(t *testing.T) {
	raw := `{
		"tool_data": {
			"tool_id": "summarizer",
			"inputs": [{"name": "text", "value": "hello"}],
			"version": 3
		},
		"user": {"id": "user-1", "fullName": "Ada", "email": "ada@example.com"},
		"client_build": "2026.08"
	}`

	var req ToolRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if req.ToolData.ToolID != "summarizer" {
		t.Errorf("ToolID = %q, want summarizer", req.ToolData.ToolID)
	}
	if len(req.ToolData.Inputs) != 1 || req.ToolData.Inputs[0].Name != "text" {
		t.Errorf("Inputs = %+v, want single text input", req.ToolData.Inputs)
	}
	if req.User.ID != "user-1" {
		t.Errorf("User.ID = %q, want user-1", req.User.ID)
	}

	// 未建模字段被保留而不是拒绝
	if _, ok := req.ToolData.Extra["version"]; !ok {
		t.Error("tool_data extra field dropped")
	}
	if _, ok := req.Extra["client_build"]; !ok {
		t.Error("top-level extra field dropped")
	}
}

func TestToolRequestMissingToolData(t *testing.T) {
	var req ToolRequest
	if err := json.Unmarshal([]byte(`{"user":{"id":"u1"}}`), &req); err == nil {
		t.Fatal("expected error for missing tool_data")
	}
}

func TestToolDataMarshalRoundTrip(t *testing.T) {
	original := `{"tool_id":"ocr","inputs":[{"name":"lang","value":"en"}],"region":"eu"}`

	var data ToolData
	if err := json.Unmarshal([]byte(original), &data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	for _, key := range []string{"tool_id", "inputs", "region"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("marshaled tool_data missing %q", key)
		}
	}
}

func TestToolDataMarshalNilInputs(t *testing.T) {
	encoded, err := json.Marshal(ToolData{ToolID: "noop"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded struct {
		Inputs []ToolInput `json:"inputs"`
	}
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if decoded.Inputs == nil {
		t.Error("inputs should encode as empty array, not null")
	}
}

package models

import "encoding/json"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one message of a chat transcript.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

const (
	ToolUpdatePreview    = "update_preview"
	ToolSignalIssueReady = "signal_issue_ready"
)

// ToolCall is a structured action the model asked for. Arguments holds the
// raw JSON payload exactly as the model produced it.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

type toolCallWire struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

func (tc ToolCall) MarshalJSON() ([]byte, error) {
	var w toolCallWire
	w.ID = tc.ID
	w.Type = "function"
	w.Function.Name = tc.Name
	w.Function.Arguments = tc.Arguments
	return json.Marshal(w)
}

func (tc *ToolCall) UnmarshalJSON(data []byte) error {
	var w toolCallWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	tc.ID = w.ID
	tc.Name = w.Function.Name
	tc.Arguments = w.Function.Arguments
	return nil
}

// ModelResponse is the model's reply to a tool-enabled request.
type ModelResponse struct {
	Text      string
	ToolCalls []ToolCall
	Usage     *TokenUsage
}

type ChatStatus string

const (
	ChatStatusContinue ChatStatus = "continue"
	ChatStatusReady    ChatStatus = "ready"
	ChatStatusError    ChatStatus = "error"
)

// ChatRequest is one user turn sent by the dashboard.
type ChatRequest struct {
	ConversationHistory []ConversationTurn `json:"conversation_history"`
	Message             string             `json:"message"`
	CurrentPreviewData  *IssueDraft        `json:"current_preview_data"`
}

// ChatResult is the outcome of one drafting turn. Ready results carry the
// final IssueData; Continue results carry a reply, the working Preview and the
// tool calls the model made.
type ChatResult struct {
	Status    ChatStatus
	Message   string
	Preview   IssueDraft
	ToolCalls []ToolCall
	IssueData IssueDraft
}

func ReadyResult(issue IssueDraft) ChatResult {
	return ChatResult{Status: ChatStatusReady, IssueData: issue}
}

func ContinueResult(message string, preview IssueDraft, calls []ToolCall) ChatResult {
	if calls == nil {
		calls = []ToolCall{}
	}
	return ChatResult{Status: ChatStatusContinue, Message: message, Preview: preview, ToolCalls: calls}
}

func ErrorResult(message string) ChatResult {
	return ChatResult{Status: ChatStatusError, Message: message}
}

func (r ChatResult) MarshalJSON() ([]byte, error) {
	switch r.Status {
	case ChatStatusReady:
		return json.Marshal(struct {
			Status    ChatStatus `json:"status"`
			IssueData IssueDraft `json:"issue_data"`
		}{r.Status, r.IssueData})
	case ChatStatusContinue:
		calls := r.ToolCalls
		if calls == nil {
			calls = []ToolCall{}
		}
		return json.Marshal(struct {
			Status      ChatStatus `json:"status"`
			Message     string     `json:"message"`
			PreviewData IssueDraft `json:"preview_data"`
			ToolCalls   []ToolCall `json:"tool_calls"`
		}{r.Status, r.Message, r.Preview, calls})
	default:
		return json.Marshal(struct {
			Status  ChatStatus `json:"status"`
			Message string     `json:"message"`
		}{r.Status, r.Message})
	}
}

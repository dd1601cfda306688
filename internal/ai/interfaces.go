package ai

import (
	"context"

	"github.com/thomas-vilte/ghdash/internal/models"
)

// ChatModel is a chat-completion language model.
type ChatModel interface {
	// Generate runs one completion. When req.Tools is set the model may return
	// tool calls; ForcedTool, if set, makes exactly that tool mandatory.
	Generate(ctx context.Context, req Request) (*models.ModelResponse, error)
}

// Request is one model call. Parallel tool calls are never enabled.
type Request struct {
	Messages   []models.ConversationTurn
	MaxTokens  int
	Tools      []ToolSpec
	ForcedTool string
	// Label names the call in logs, e.g. "readiness" or "chat".
	Label string
}

// CompleteText sends prompt as a single user turn and returns the reply text.
func CompleteText(ctx context.Context, m ChatModel, label, prompt string, maxTokens int) (string, error) {
	resp, err := m.Generate(ctx, Request{
		Messages:  []models.ConversationTurn{{Role: models.RoleUser, Content: prompt}},
		MaxTokens: maxTokens,
		Label:     label,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/thomas-vilte/ghdash/internal/ai"
	"github.com/thomas-vilte/ghdash/internal/config"
	"github.com/thomas-vilte/ghdash/internal/i18n"
	"github.com/thomas-vilte/ghdash/internal/logger"
	"github.com/thomas-vilte/ghdash/internal/models"
	"github.com/thomas-vilte/ghdash/internal/text"
)

// extractionWindow is how many trailing turns the extraction call sees.
const extractionWindow = 10

// readinessDetector is a minimal interface for testing purposes
type readinessDetector interface {
	Detect(ctx context.Context, message string) bool
}

// IssueChatService runs one turn of the issue drafting conversation. It keeps
// no state between turns: the caller sends the history and current draft.
type IssueChatService struct {
	model     ai.ChatModel
	readiness readinessDetector
	trans     *i18n.Translations
	tokens    config.TokenBudgets
}

type IssueChatOption func(*IssueChatService)

func WithReadinessDetector(d readinessDetector) IssueChatOption {
	return func(s *IssueChatService) {
		s.readiness = d
	}
}

func NewIssueChatService(model ai.ChatModel, trans *i18n.Translations, tokens config.TokenBudgets, opts ...IssueChatOption) *IssueChatService {
	s := &IssueChatService{
		model:  model,
		trans:  trans,
		tokens: tokens,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.readiness == nil {
		s.readiness = NewReadinessDetector(model, tokens.Readiness)
	}
	return s
}

// newDraftingRequest forces update_preview so every turn refreshes the preview.
func newDraftingRequest(messages []models.ConversationTurn, maxTokens int) ai.Request {
	return ai.Request{
		Messages:   messages,
		MaxTokens:  maxTokens,
		Tools:      ai.DraftingTools(),
		ForcedTool: models.ToolUpdatePreview,
		Label:      "chat",
	}
}

// newFinalizeRequest forces signal_issue_ready once the user is done.
func newFinalizeRequest(messages []models.ConversationTurn, maxTokens int) ai.Request {
	return ai.Request{
		Messages:   messages,
		MaxTokens:  maxTokens,
		Tools:      ai.DraftingTools(),
		ForcedTool: models.ToolSignalIssueReady,
		Label:      "chat",
	}
}

// Chat processes one user message. Only a failure of the main model call is
// returned as an error; every secondary call degrades to a fixed default.
func (s *IssueChatService) Chat(ctx context.Context, req models.ChatRequest) (models.ChatResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return models.ErrorResult(s.trans.GetMessage("chat.empty_message", 0, nil)), nil
	}

	ready := s.readiness.Detect(ctx, req.Message)
	log := logger.FromContext(ctx).With("ready", ready)

	messages := make([]models.ConversationTurn, 0, len(req.ConversationHistory)+2)
	messages = append(messages, models.ConversationTurn{Role: models.RoleSystem, Content: ai.ChatIssueSystemPrompt})
	messages = append(messages, req.ConversationHistory...)
	messages = append(messages, models.ConversationTurn{Role: models.RoleUser, Content: req.Message})

	var modelReq ai.Request
	if ready {
		modelReq = newFinalizeRequest(messages, s.tokens.Chat)
	} else {
		modelReq = newDraftingRequest(messages, s.tokens.Chat)
	}

	resp, err := s.model.Generate(ctx, modelReq)
	if err != nil {
		return models.ChatResult{}, err
	}

	var preview models.IssueDraft
	if req.CurrentPreviewData != nil {
		preview = req.CurrentPreviewData.Clone()
	}

	for _, call := range resp.ToolCalls {
		var args models.IssueDraft
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			log.Warn("skipping tool call with invalid arguments", "tool", call.Name, "error", err)
			continue
		}

		switch call.Name {
		case models.ToolSignalIssueReady:
			log.Info("issue draft signalled ready")
			return models.ReadyResult(args), nil
		case models.ToolUpdatePreview:
			preview = models.MergeDraft(preview, args)
			log.Debug("preview merged", "updated", args.Keys(), "present", preview.Keys())
		default:
			log.Warn("ignoring unknown tool call", "tool", call.Name)
		}
	}

	if preview.IsEmpty() && !ready {
		extracted, ok := s.extractDetails(ctx, messages)
		if ok {
			preview = extracted
		} else {
			preview = models.EmptyDraft()
		}
	}

	message := strings.TrimSpace(resp.Text)
	if message != "" {
		sanitized, present := text.Sanitize(message, preview)
		if present && sanitized != "" {
			message = sanitized
		} else {
			message = text.ConversationalFallback(s.trans, preview)
		}
	}

	if message == "" && !ready {
		message = s.followUp(ctx, preview, req.Message)
	}

	return models.ContinueResult(message, preview, resp.ToolCalls), nil
}

// extractDetails asks the model to rebuild the draft from the recent
// conversation. Values that are null, empty strings or empty lists are dropped.
func (s *IssueChatService) extractDetails(ctx context.Context, messages []models.ConversationTurn) (models.IssueDraft, bool) {
	recent := messages
	if len(recent) > extractionWindow {
		recent = recent[len(recent)-extractionWindow:]
	}

	lines := make([]string, 0, len(recent))
	for _, m := range recent {
		if m.Content == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}

	prompt, err := ai.RenderPrompt("extract", ai.ExtractIssueDetailsPromptTemplate,
		ai.PromptData{ConversationText: strings.Join(lines, "\n")})
	if err != nil {
		logger.Error(ctx, "failed to render extraction prompt", err)
		return models.IssueDraft{}, false
	}

	reply, err := ai.CompleteText(ctx, s.model, "extract", prompt, s.tokens.Extract)
	if err != nil {
		logger.Warn(ctx, "issue detail extraction failed", "error", err)
		return models.IssueDraft{}, false
	}

	raw, ok := ai.ParseJSONOutput(reply)
	if !ok {
		return models.IssueDraft{}, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.IssueDraft{}, false
	}
	for key, value := range fields {
		switch strings.TrimSpace(string(value)) {
		case "null", `""`, "[]":
			delete(fields, key)
		}
	}

	filtered, _ := json.Marshal(fields)
	var draft models.IssueDraft
	if err := json.Unmarshal(filtered, &draft); err != nil {
		logger.Warn(ctx, "extracted issue details have unexpected types", "error", err)
		return models.IssueDraft{}, false
	}
	if draft.IsEmpty() {
		return models.IssueDraft{}, false
	}
	return draft, true
}

func (s *IssueChatService) followUp(ctx context.Context, preview models.IssueDraft, userMessage string) string {
	prompt, err := ai.RenderPrompt("follow_up", ai.FollowUpPromptTemplate,
		ai.PromptData{CurrentTitle: preview.Title, UserMessage: userMessage})
	if err == nil {
		var reply string
		reply, err = ai.CompleteText(ctx, s.model, "follow_up", prompt, s.tokens.FollowUp)
		if err == nil {
			return reply
		}
	}
	logger.Warn(ctx, "follow-up reply failed", "error", err)
	return s.trans.GetMessage("chat.follow_up_failed", 0, nil)
}

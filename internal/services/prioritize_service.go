package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elliotchance/pie/v2"

	"github.com/thomas-vilte/ghdash/internal/ai"
	"github.com/thomas-vilte/ghdash/internal/config"
	"github.com/thomas-vilte/ghdash/internal/logger"
	"github.com/thomas-vilte/ghdash/internal/models"
)

type PrioritizeService struct {
	model     ai.ChatModel
	maxTokens int
	maxIssues int
}

func NewPrioritizeService(model ai.ChatModel, tokens config.TokenBudgets, limits config.LimitsConfig) *PrioritizeService {
	return &PrioritizeService{
		model:     model,
		maxTokens: tokens.Prioritize,
		maxIssues: limits.MaxPrioritizeIssues,
	}
}

// Prioritize orders issue ids from most to least urgent. Only the first
// maxIssues issues are shown to the model; when its answer is not a list of
// ids the original order of every issue is returned.
func (s *PrioritizeService) Prioritize(ctx context.Context, issues []models.IssueRef) []models.ItemID {
	original := pie.Map(issues, func(i models.IssueRef) models.ItemID { return i.ID })
	if original == nil {
		original = []models.ItemID{}
	}

	shown := issues
	if len(shown) > s.maxIssues {
		shown = shown[:s.maxIssues]
	}
	lines := pie.Map(shown, func(i models.IssueRef) string {
		return fmt.Sprintf("ID:%s - %s", i.ID.String(), i.Title)
	})

	prompt, err := ai.RenderPrompt("prioritize", ai.PrioritizeIssuesPromptTemplate,
		ai.PromptData{IssuesText: strings.Join(lines, "\n")})
	if err != nil {
		logger.Error(ctx, "failed to render prioritize prompt", err)
		return original
	}

	reply, err := ai.CompleteText(ctx, s.model, "prioritize", prompt, s.maxTokens)
	if err != nil {
		logger.Warn(ctx, "prioritization failed, keeping original order", "error", err)
		return original
	}

	raw, ok := ai.ParseJSONOutput(reply)
	if !ok {
		logger.Warn(ctx, "prioritization reply is not JSON, keeping original order")
		return original
	}
	var ordered []models.ItemID
	if err := json.Unmarshal(raw, &ordered); err != nil || ordered == nil {
		logger.Warn(ctx, "prioritization reply is not a list of ids, keeping original order")
		return original
	}
	return ordered
}

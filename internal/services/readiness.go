package services

import (
	"context"
	"strings"

	"github.com/thomas-vilte/ghdash/internal/ai"
	"github.com/thomas-vilte/ghdash/internal/logger"
)

// readyPhrases settle readiness without a model call.
var readyPhrases = []string{
	"create the ticket",
	"make the ticket",
	"create the issue",
	"make the issue",
	"generate the ticket",
	"generate the issue",
	"i'm ready",
	"im ready",
	"ready to create",
	"looks good",
	"that's enough",
	"thats enough",
	"good enough",
	"let's create",
	"lets create",
}

// fallbackReadyWords decide readiness when the model cannot be reached.
var fallbackReadyWords = []string{"ready", "create", "make"}

// ReadinessDetector decides whether a chat message asks to file the issue now.
type ReadinessDetector struct {
	model     ai.ChatModel
	maxTokens int
}

func NewReadinessDetector(model ai.ChatModel, maxTokens int) *ReadinessDetector {
	return &ReadinessDetector{model: model, maxTokens: maxTokens}
}

// Detect checks the fixed phrases first and only then asks the model for a
// yes/no answer. A failed model call falls back to a plain word match.
func (d *ReadinessDetector) Detect(ctx context.Context, message string) bool {
	if strings.TrimSpace(message) == "" {
		return false
	}

	lower := strings.ToLower(message)
	for _, phrase := range readyPhrases {
		if strings.Contains(lower, phrase) {
			logger.Debug(ctx, "readiness detected", "match", phrase)
			return true
		}
	}

	prompt, err := ai.RenderPrompt("readiness", ai.ReadinessPromptTemplate, ai.PromptData{UserMessage: message})
	if err == nil {
		var answer string
		answer, err = ai.CompleteText(ctx, d.model, "readiness", prompt, d.maxTokens)
		if err == nil {
			ready := strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "yes")
			if ready {
				logger.Debug(ctx, "readiness detected", "match", "model")
			}
			return ready
		}
	}

	logger.Warn(ctx, "readiness check fell back to word match", "error", err)
	for _, word := range fallbackReadyWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

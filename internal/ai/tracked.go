package ai

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/thomas-vilte/ghdash/internal/errors"
	"github.com/thomas-vilte/ghdash/internal/logger"
	"github.com/thomas-vilte/ghdash/internal/models"
)

// TrackedModel decorates a provider with a per-call timeout, usage logging
// and error classification.
type TrackedModel struct {
	next     ChatModel
	provider string
	model    string
	timeout  time.Duration
}

var _ ChatModel = (*TrackedModel)(nil)

func NewTrackedModel(next ChatModel, provider, model string, timeout time.Duration) *TrackedModel {
	return &TrackedModel{
		next:     next,
		provider: provider,
		model:    model,
		timeout:  timeout,
	}
}

func (t *TrackedModel) Generate(ctx context.Context, req Request) (*models.ModelResponse, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := t.next.Generate(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error(ctx, "model call failed", err,
			"call", req.Label,
			"provider", t.provider,
			"duration_ms", elapsed.Milliseconds())

		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, err
		}
		return nil, errors.ErrAIGeneration.WithError(err).
			WithContext("provider", t.provider).
			WithContext("call", req.Label)
	}

	if resp.Usage == nil {
		resp.Usage = &models.TokenUsage{}
	}
	resp.Usage.Model = t.model
	resp.Usage.DurationMs = elapsed.Milliseconds()

	cost := EstimateCost(t.provider, t.model, resp.Usage.InputTokens, resp.Usage.OutputTokens)
	args := []any{"call", req.Label, "provider", t.provider, "tool_calls", len(resp.ToolCalls), "cost_usd", cost}
	logger.Debug(ctx, "model call completed", append(args, resp.Usage.LogArgs()...)...)

	return resp, nil
}

package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/thomas-vilte/ghdash/internal/ai"
	"github.com/thomas-vilte/ghdash/internal/models"
)

func TestReadinessDetector_Detect(t *testing.T) {
	ctx := context.Background()

	t.Run("should reject blank input without calling the model", func(t *testing.T) {
		model := new(ai.MockChatModel)
		d := NewReadinessDetector(model, 10)

		assert.False(t, d.Detect(ctx, ""))
		assert.False(t, d.Detect(ctx, "   \n"))
		model.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("should match ready phrases case-insensitively", func(t *testing.T) {
		model := new(ai.MockChatModel)
		d := NewReadinessDetector(model, 10)

		for _, msg := range []string{"Looks good, create it", "OK I'M READY", "lets create this", "That's enough detail"} {
			assert.True(t, d.Detect(ctx, msg), msg)
		}
		model.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("should ask the model with a single short prompt", func(t *testing.T) {
		model := new(ai.MockChatModel)
		model.On("Generate", mock.Anything, mock.MatchedBy(func(req ai.Request) bool {
			return req.MaxTokens == 10 &&
				len(req.Messages) == 1 &&
				req.Messages[0].Role == models.RoleUser &&
				len(req.Tools) == 0
		})).Return(&models.ModelResponse{Text: "  Yes."}, nil).Once()
		d := NewReadinessDetector(model, 10)

		assert.True(t, d.Detect(ctx, "ship it"))
		model.AssertExpectations(t)
	})

	t.Run("should treat any other answer as not ready", func(t *testing.T) {
		model := new(ai.MockChatModel)
		model.On("Generate", mock.Anything, mock.Anything).Return(&models.ModelResponse{Text: "no"}, nil)
		d := NewReadinessDetector(model, 10)

		assert.False(t, d.Detect(ctx, "it also crashes on Linux"))
	})

	t.Run("should fall back to word matching when the model fails", func(t *testing.T) {
		model := new(ai.MockChatModel)
		model.On("Generate", mock.Anything, mock.Anything).Return(nil, stderrors.New("timeout"))
		d := NewReadinessDetector(model, 10)

		assert.True(t, d.Detect(ctx, "please make it"))
		assert.True(t, d.Detect(ctx, "Create"))
		assert.False(t, d.Detect(ctx, "it also crashes on Linux"))
	})
}

package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCost(t *testing.T) {
	t.Run("should price a known model", func(t *testing.T) {
		assert.InDelta(t, 0.75, EstimateCost("openai", "gpt-4o-mini", 1_000_000, 1_000_000), 1e-9)
	})

	t.Run("should match dated model names by prefix", func(t *testing.T) {
		assert.InDelta(t, 0.15, EstimateCost("OpenAI", "gpt-4o-mini-2024-07-18", 1_000_000, 0), 1e-9)
	})

	t.Run("should prefer the longest prefix", func(t *testing.T) {
		assert.InDelta(t, 0.10, EstimateCost("gemini", "gemini-2.5-flash-lite-001", 1_000_000, 0), 1e-9)
	})

	t.Run("should return zero for unknown models", func(t *testing.T) {
		assert.Zero(t, EstimateCost("openai", "mystery", 100, 100))
		assert.Zero(t, EstimateCost("nobody", "gpt-4o", 100, 100))
	})
}

package services

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thomas-vilte/ghdash/internal/ai"
	"github.com/thomas-vilte/ghdash/internal/config"
	"github.com/thomas-vilte/ghdash/internal/models"
	"github.com/thomas-vilte/ghdash/internal/vcs"
)

func newTestSummaryService(model *ai.MockChatModel, gh *vcs.MockGitHubClient, cache *MockSummaryCache) *SummaryService {
	cfg := config.Default()
	limits := cfg.Limits
	limits.MaxPatchSize = 5
	return NewSummaryService(model, gh, cache, cfg.AI.Tokens, limits)
}

func TestSummaryService_Summarize(t *testing.T) {
	ctx := context.Background()

	t.Run("should return a cached summary without calling upstream", func(t *testing.T) {
		model := new(ai.MockChatModel)
		gh := new(vcs.MockGitHubClient)
		cache := new(MockSummaryCache)
		cached := &models.SummaryResponse{Summary: []byte(`"cached"`), Files: []models.PRFile{}, MentionedUsers: []string{}}
		cache.On("Get", mock.Anything, "12").Return(cached, true, nil).Once()

		resp := newTestSummaryService(model, gh, cache).Summarize(ctx, models.SummarizeRequest{ID: models.NumericID(12), Title: "T"})

		assert.Same(t, cached, resp)
		model.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should summarize an issue and cache the result", func(t *testing.T) {
		model := new(ai.MockChatModel)
		gh := new(vcs.MockGitHubClient)
		cache := new(MockSummaryCache)
		cache.On("Get", mock.Anything, "12").Return(nil, false, nil).Once()
		cache.On("Set", mock.Anything, "12", mock.Anything).Return(nil).Once()
		model.On("Generate", mock.Anything, mock.MatchedBy(func(req ai.Request) bool {
			return req.Label == "summary" &&
				req.MaxTokens == 300 &&
				strings.Contains(req.Messages[0].Content, "Title: Login fails")
		})).Return(&models.ModelResponse{Text: "```json\n{\"issue_type\":\"bug\",\"summary\":\"Login is broken\"}\n```"}, nil).Once()

		resp := newTestSummaryService(model, gh, cache).Summarize(ctx, models.SummarizeRequest{
			ID:    models.NumericID(12),
			Title: "Login fails",
			Body:  "cc @alice and @bob, @alice",
		})

		require.NotNil(t, resp)
		assert.JSONEq(t, `{"issue_type":"bug","summary":"Login is broken"}`, string(resp.Summary))
		assert.Equal(t, []models.PRFile{}, resp.Files)
		assert.Equal(t, []string{"alice", "bob"}, resp.MentionedUsers)
		cache.AssertExpectations(t)
		gh.AssertNotCalled(t, "ListPRFiles", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should summarize a pull request with truncated file patches", func(t *testing.T) {
		model := new(ai.MockChatModel)
		gh := new(vcs.MockGitHubClient)
		cache := new(MockSummaryCache)
		cache.On("Get", mock.Anything, "pr-7").Return(nil, false, nil)
		cache.On("Set", mock.Anything, "pr-7", mock.Anything).Return(nil)
		gh.On("ListPRFiles", mock.Anything, "octo/demo", 7, 20).Return([]models.PRFile{
			{Filename: "src/a.go", Status: "modified", Additions: 3, Deletions: 1, Changes: 4, Patch: "héllo world"},
		}, nil).Once()
		model.On("Generate", mock.Anything, mock.MatchedBy(func(req ai.Request) bool {
			return req.MaxTokens == 500 &&
				strings.Contains(req.Messages[0].Content, "Changed files (1):") &&
				strings.Contains(req.Messages[0].Content, "- src/a.go (modified): +3/-1")
		})).Return(&models.ModelResponse{Text: "Refactors the parser."}, nil).Once()

		resp := newTestSummaryService(model, gh, cache).Summarize(ctx, models.SummarizeRequest{
			ID:    models.StringID("pr-7"),
			Title: "Parser",
			IsPR:  true,
			PRURL: "https://github.com/octo/demo/pull/7",
			Repo:  "octo/demo",
		})

		assert.Equal(t, `"Refactors the parser."`, string(resp.Summary))
		require.Len(t, resp.Files, 1)
		assert.Equal(t, "héllo", resp.Files[0].Patch)
		gh.AssertExpectations(t)
		model.AssertExpectations(t)
	})

	t.Run("should fall back to the issue prompt when PR files cannot be fetched", func(t *testing.T) {
		model := new(ai.MockChatModel)
		gh := new(vcs.MockGitHubClient)
		cache := new(MockSummaryCache)
		cache.On("Get", mock.Anything, mock.Anything).Return(nil, false, nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		gh.On("ListPRFiles", mock.Anything, "octo/demo", 9, 20).Return(nil, stderrors.New("not found")).Once()
		model.On("Generate", mock.Anything, mock.MatchedBy(func(req ai.Request) bool {
			return req.MaxTokens == 300
		})).Return(&models.ModelResponse{Text: `{"summary":"x"}`}, nil).Once()

		resp := newTestSummaryService(model, gh, cache).Summarize(ctx, models.SummarizeRequest{
			ID:    models.NumericID(3),
			IsPR:  true,
			PRURL: "https://api.github.com/repos/octo/demo/pulls/9",
			Repo:  "octo/demo",
		})

		assert.Equal(t, []models.PRFile{}, resp.Files)
		model.AssertExpectations(t)
	})

	t.Run("should not fetch files for a PR url without a number", func(t *testing.T) {
		model := new(ai.MockChatModel)
		gh := new(vcs.MockGitHubClient)
		cache := new(MockSummaryCache)
		cache.On("Get", mock.Anything, mock.Anything).Return(nil, false, nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		model.On("Generate", mock.Anything, mock.Anything).Return(&models.ModelResponse{Text: "ok"}, nil)

		newTestSummaryService(model, gh, cache).Summarize(ctx, models.SummarizeRequest{
			ID:    models.NumericID(4),
			IsPR:  true,
			PRURL: "https://github.com/octo/demo",
			Repo:  "octo/demo",
		})

		gh.AssertNotCalled(t, "ListPRFiles", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should cache a fallback summary when the model fails", func(t *testing.T) {
		model := new(ai.MockChatModel)
		gh := new(vcs.MockGitHubClient)
		cache := new(MockSummaryCache)
		cache.On("Get", mock.Anything, "5").Return(nil, false, nil)
		cache.On("Set", mock.Anything, "5", mock.Anything).Return(nil).Once()
		model.On("Generate", mock.Anything, mock.Anything).Return(nil, stderrors.New("quota exceeded"))

		resp := newTestSummaryService(model, gh, cache).Summarize(ctx, models.SummarizeRequest{ID: models.NumericID(5)})

		assert.JSONEq(t, `{"issue_type":"unknown","summary":"Summary unavailable: quota exceeded"}`, string(resp.Summary))
		cache.AssertExpectations(t)
	})

	t.Run("should use the pull request fallback shape for PRs", func(t *testing.T) {
		model := new(ai.MockChatModel)
		gh := new(vcs.MockGitHubClient)
		cache := new(MockSummaryCache)
		cache.On("Get", mock.Anything, mock.Anything).Return(nil, false, nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		model.On("Generate", mock.Anything, mock.Anything).Return(nil, stderrors.New("boom"))

		resp := newTestSummaryService(model, gh, cache).Summarize(ctx, models.SummarizeRequest{ID: models.NumericID(6), IsPR: true})

		assert.JSONEq(t, `{"summary":"Summary unavailable: boom","code_updates":""}`, string(resp.Summary))
	})

	t.Run("should still answer when the cache is unavailable", func(t *testing.T) {
		model := new(ai.MockChatModel)
		gh := new(vcs.MockGitHubClient)
		cache := new(MockSummaryCache)
		cache.On("Get", mock.Anything, mock.Anything).Return(nil, false, stderrors.New("disk"))
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(stderrors.New("disk"))
		model.On("Generate", mock.Anything, mock.Anything).Return(&models.ModelResponse{Text: "fine"}, nil)

		resp := newTestSummaryService(model, gh, cache).Summarize(ctx, models.SummarizeRequest{ID: models.NumericID(8)})

		assert.Equal(t, `"fine"`, string(resp.Summary))
	})

	t.Run("should skip the cache when there is no id", func(t *testing.T) {
		model := new(ai.MockChatModel)
		gh := new(vcs.MockGitHubClient)
		cache := new(MockSummaryCache)
		model.On("Generate", mock.Anything, mock.Anything).Return(&models.ModelResponse{Text: "fine"}, nil)

		newTestSummaryService(model, gh, cache).Summarize(ctx, models.SummarizeRequest{Title: "T"})

		cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "日本", truncateRunes("日本語", 2))
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	assert.Equal(t, "abc", truncateRunes("abc", 0))
}

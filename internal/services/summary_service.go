package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/thomas-vilte/ghdash/internal/ai"
	"github.com/thomas-vilte/ghdash/internal/config"
	"github.com/thomas-vilte/ghdash/internal/errors"
	"github.com/thomas-vilte/ghdash/internal/logger"
	"github.com/thomas-vilte/ghdash/internal/models"
	"github.com/thomas-vilte/ghdash/internal/regex"
	"github.com/thomas-vilte/ghdash/internal/text"
	"github.com/thomas-vilte/ghdash/internal/vcs"
)

// summaryCache is a minimal interface for testing purposes
type summaryCache interface {
	Get(ctx context.Context, id string) (*models.SummaryResponse, bool, error)
	Set(ctx context.Context, id string, resp *models.SummaryResponse) error
}

type SummaryService struct {
	model  ai.ChatModel
	github vcs.GitHubClient
	cache  summaryCache
	tokens config.TokenBudgets
	limits config.LimitsConfig
}

func NewSummaryService(model ai.ChatModel, github vcs.GitHubClient, cache summaryCache, tokens config.TokenBudgets, limits config.LimitsConfig) *SummaryService {
	return &SummaryService{
		model:  model,
		github: github,
		cache:  cache,
		tokens: tokens,
		limits: limits,
	}
}

type issueSummaryFallback struct {
	IssueType string `json:"issue_type"`
	Summary   string `json:"summary"`
}

type prSummaryFallback struct {
	Summary     string `json:"summary"`
	CodeUpdates string `json:"code_updates"`
}

// Summarize returns the cached response for req.ID when there is one.
// Otherwise it builds a fresh summary, which never fails, and caches it.
func (s *SummaryService) Summarize(ctx context.Context, req models.SummarizeRequest) *models.SummaryResponse {
	id := req.ID.String()
	ctx = logger.With(ctx, "item_id", id)

	if !req.ID.IsZero() {
		cached, found, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.Error(ctx, "failed to read summary cache", err)
		} else if found {
			logger.Debug(ctx, "summary cache hit")
			return cached
		}
	}

	files := []models.PRFile{}
	if req.IsPR && req.PRURL != "" && req.Repo != "" {
		files = s.fetchPRFiles(ctx, req.PRURL, req.Repo)
	}

	resp := &models.SummaryResponse{
		Summary:        s.summarize(ctx, req.Title, req.Body, files, req.IsPR),
		Files:          files,
		MentionedUsers: text.ExtractMentionedUsers(req.Body),
	}

	if !req.ID.IsZero() {
		if err := s.cache.Set(ctx, id, resp); err != nil {
			logger.Error(ctx, "failed to write summary cache", err)
		}
	}
	return resp
}

func (s *SummaryService) summarize(ctx context.Context, title, body string, files []models.PRFile, isPR bool) json.RawMessage {
	var (
		prompt    string
		err       error
		maxTokens int
	)
	if isPR && len(files) > 0 {
		lines := make([]string, 0, len(files))
		for _, f := range files {
			lines = append(lines, fmt.Sprintf("- %s (%s): +%d/-%d", f.Filename, f.Status, f.Additions, f.Deletions))
		}
		prompt, err = ai.RenderPrompt("summarize_pr", ai.SummarizePRPromptTemplate, ai.PromptData{
			Title:     title,
			Body:      body,
			FileCount: len(files),
			FilesText: strings.Join(lines, "\n"),
		})
		maxTokens = s.tokens.Summary
	} else {
		prompt, err = ai.RenderPrompt("summarize_issue", ai.SummarizeIssuePromptTemplate, ai.PromptData{
			Title: title,
			Body:  body,
		})
		maxTokens = s.tokens.Issue
	}

	var reply string
	if err == nil {
		reply, err = ai.CompleteText(ctx, s.model, "summary", prompt, maxTokens)
	}
	if err != nil {
		logger.Error(ctx, "summary generation failed", err)
		var fallback any = issueSummaryFallback{IssueType: "unknown", Summary: "Summary unavailable: " + err.Error()}
		if isPR {
			fallback = prSummaryFallback{Summary: "Summary unavailable: " + err.Error()}
		}
		out, _ := json.Marshal(fallback)
		return out
	}

	if raw, ok := ai.ParseJSONOutput(reply); ok {
		return raw
	}
	return ai.TextAsJSON(reply)
}

// fetchPRFiles returns the changed files of the pull request behind prURL,
// patches truncated. Any failure yields an empty list.
func (s *SummaryService) fetchPRFiles(ctx context.Context, prURL, repo string) []models.PRFile {
	m := regex.PullNumber.FindStringSubmatch(prURL)
	if m == nil {
		logger.Warn(ctx, "could not fetch PR files", "error", errors.ErrInvalidPRURL, "pr_url", prURL)
		return []models.PRFile{}
	}
	number, err := strconv.Atoi(m[1])
	if err != nil {
		logger.Warn(ctx, "could not fetch PR files", "error", err, "pr_url", prURL)
		return []models.PRFile{}
	}

	files, err := s.github.ListPRFiles(ctx, repo, number, s.limits.MaxPRFiles)
	if err != nil {
		logger.Error(ctx, "failed to fetch PR files", err, "repo", repo, "pr_number", number)
		return []models.PRFile{}
	}

	for i := range files {
		files[i].Patch = truncateRunes(files[i].Patch, s.limits.MaxPatchSize)
	}
	if files == nil {
		files = []models.PRFile{}
	}
	return files
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

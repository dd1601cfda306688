package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/elliotchance/pie/v2"
	"golang.org/x/sync/errgroup"

	"github.com/thomas-vilte/ghdash/internal/i18n"
	"github.com/thomas-vilte/ghdash/internal/logger"
	"github.com/thomas-vilte/ghdash/internal/models"
	"github.com/thomas-vilte/ghdash/internal/vcs"
)

// maxConcurrentFieldUpdates bounds the GraphQL mutations in flight per issue.
const maxConcurrentFieldUpdates = 4

// IssueService files issues and attaches them to Projects v2 boards.
type IssueService struct {
	github vcs.GitHubClient
	trans  *i18n.Translations
}

func NewIssueService(github vcs.GitHubClient, trans *i18n.Translations) *IssueService {
	return &IssueService{github: github, trans: trans}
}

// CreateIssue never returns an error: failures are reported in the result.
func (s *IssueService) CreateIssue(ctx context.Context, req models.CreateIssueRequest) models.CreateIssueResult {
	req.Labels = cleanLabels(req.Labels)
	ctx = logger.With(ctx, "repo", req.Repo)

	issue, err := s.github.CreateIssue(ctx, req.Repo, req)
	if err != nil {
		return models.CreateIssueResult{Success: false, Error: upstreamMessage(err)}
	}

	logger.Info(ctx, "issue created", "issue_number", issue.Number)
	return models.CreateIssueResult{
		Success:     true,
		IssueURL:    issue.HTMLURL,
		IssueNumber: issue.Number,
		IssueData:   issue.Raw,
	}
}

// CreateIssueWithProject creates the issue and, when a project is given, adds
// it to that board. A failed attachment only adds a project warning.
func (s *IssueService) CreateIssueWithProject(ctx context.Context, req models.CreateIssueWithProjectRequest) models.CreateIssueResult {
	req.Labels = cleanLabels(req.Labels)
	ctx = logger.With(ctx, "repo", req.Repo)

	issue, err := s.github.CreateIssue(ctx, req.Repo, req.CreateIssueRequest)
	if err != nil {
		return models.CreateIssueResult{Success: false, Error: upstreamMessage(err)}
	}
	logger.Info(ctx, "issue created", "issue_number", issue.Number)

	result := models.CreateIssueResult{
		Success:     true,
		IssueURL:    issue.HTMLURL,
		IssueNumber: issue.Number,
		IssueData:   issue.Raw,
	}
	if req.ProjectID == "" {
		return result
	}

	if err := s.attachToProject(ctx, req.Repo, issue, req.ProjectID, req.FieldValues); err != nil {
		logger.Error(ctx, "failed to add issue to project", err, "project_id", req.ProjectID)
		result.ProjectWarning = s.projectWarning(err)
	}
	return result
}

func (s *IssueService) ListProjects(ctx context.Context, repo string) ([]models.Project, error) {
	return s.github.ListRepositoryProjects(ctx, repo)
}

func (s *IssueService) ListProjectFields(ctx context.Context, projectID string) ([]models.ProjectField, error) {
	return s.github.ListProjectFields(ctx, projectID)
}

func (s *IssueService) attachToProject(ctx context.Context, repo string, issue *models.CreatedIssue, projectID string, fieldValues map[string]json.RawMessage) error {
	nodeID := issue.NodeID
	if nodeID == "" {
		var err error
		nodeID, err = s.github.GetIssueNodeID(ctx, repo, issue.Number)
		if err != nil {
			return err
		}
	}

	itemID, err := s.github.AddProjectItem(ctx, projectID, nodeID)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFieldUpdates)
	for fieldID, raw := range fieldValues {
		value := vcs.FormatFieldValue(raw)
		g.Go(func() error {
			if err := s.github.UpdateProjectItemField(gctx, projectID, itemID, fieldID, value); err != nil {
				logger.Warn(gctx, "failed to update project field", "field_id", fieldID, "error", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *IssueService) projectWarning(err error) string {
	var gqlErr *vcs.GraphQLError
	if stderrors.As(err, &gqlErr) {
		return s.trans.GetMessage("project.attach_failed", 0, nil)
	}
	return err.Error()
}

// upstreamMessage prefers the raw GitHub status and body when there is one.
func upstreamMessage(err error) string {
	var upstream *vcs.UpstreamError
	if stderrors.As(err, &upstream) {
		return upstream.Error()
	}
	return err.Error()
}

func cleanLabels(labels []string) []string {
	cleaned := pie.Filter(pie.Map(labels, strings.TrimSpace), func(l string) bool { return l != "" })
	if cleaned == nil {
		return []string{}
	}
	return cleaned
}

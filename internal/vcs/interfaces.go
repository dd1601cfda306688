package vcs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thomas-vilte/ghdash/internal/models"
)

// GitHubClient defines the GitHub operations the dashboard needs, REST and
// GraphQL alike. Repositories are always given as "owner/name".
type GitHubClient interface {
	// GetAuthenticatedUser returns the login of the token owner.
	GetAuthenticatedUser(ctx context.Context) (string, error)
	// SearchOpenItemsByAuthor lists open issues and pull requests authored by login,
	// most recently updated first.
	SearchOpenItemsByAuthor(ctx context.Context, login string) ([]models.ActivityItem, error)
	// ListPRFiles lists the changed files of a pull request, at most limit of them.
	ListPRFiles(ctx context.Context, repo string, number int, limit int) ([]models.PRFile, error)
	// CreateIssue opens a new issue.
	CreateIssue(ctx context.Context, repo string, req models.CreateIssueRequest) (*models.CreatedIssue, error)
	// GetIssueNodeID resolves the GraphQL node id of an issue.
	GetIssueNodeID(ctx context.Context, repo string, number int) (string, error)
	// ListRepositoryProjects lists the Projects v2 boards linked to a repository.
	ListRepositoryProjects(ctx context.Context, repo string) ([]models.Project, error)
	// ListProjectFields lists the fields of a Projects v2 board.
	ListProjectFields(ctx context.Context, projectID string) ([]models.ProjectField, error)
	// AddProjectItem adds content (an issue node id) to a board and returns the item id.
	AddProjectItem(ctx context.Context, projectID, contentID string) (string, error)
	// UpdateProjectItemField sets one field value on a board item.
	UpdateProjectItemField(ctx context.Context, projectID, itemID, fieldID string, value models.ProjectFieldValue) error
}

// ClientFactory builds a client authenticated with token.
type ClientFactory func(token string) GitHubClient

// UpstreamError is a non-2xx answer from the GitHub REST API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// GraphQLError carries the errors array of a GraphQL response that
// otherwise succeeded at the HTTP level.
type GraphQLError struct {
	Errors []json.RawMessage
}

func (e *GraphQLError) Error() string {
	if len(e.Errors) == 0 {
		return "graphql: unknown error"
	}
	return fmt.Sprintf("graphql: %s", string(e.Errors[0]))
}

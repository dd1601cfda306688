package vcs

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/thomas-vilte/ghdash/internal/models"
)

type MockGitHubClient struct {
	mock.Mock
}

func (m *MockGitHubClient) GetAuthenticatedUser(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitHubClient) SearchOpenItemsByAuthor(ctx context.Context, login string) ([]models.ActivityItem, error) {
	args := m.Called(ctx, login)
	items, _ := args.Get(0).([]models.ActivityItem)
	return items, args.Error(1)
}

func (m *MockGitHubClient) ListPRFiles(ctx context.Context, repo string, number int, limit int) ([]models.PRFile, error) {
	args := m.Called(ctx, repo, number, limit)
	files, _ := args.Get(0).([]models.PRFile)
	return files, args.Error(1)
}

func (m *MockGitHubClient) CreateIssue(ctx context.Context, repo string, req models.CreateIssueRequest) (*models.CreatedIssue, error) {
	args := m.Called(ctx, repo, req)
	issue, _ := args.Get(0).(*models.CreatedIssue)
	return issue, args.Error(1)
}

func (m *MockGitHubClient) GetIssueNodeID(ctx context.Context, repo string, number int) (string, error) {
	args := m.Called(ctx, repo, number)
	return args.String(0), args.Error(1)
}

func (m *MockGitHubClient) ListRepositoryProjects(ctx context.Context, repo string) ([]models.Project, error) {
	args := m.Called(ctx, repo)
	projects, _ := args.Get(0).([]models.Project)
	return projects, args.Error(1)
}

func (m *MockGitHubClient) ListProjectFields(ctx context.Context, projectID string) ([]models.ProjectField, error) {
	args := m.Called(ctx, projectID)
	fields, _ := args.Get(0).([]models.ProjectField)
	return fields, args.Error(1)
}

func (m *MockGitHubClient) AddProjectItem(ctx context.Context, projectID, contentID string) (string, error) {
	args := m.Called(ctx, projectID, contentID)
	return args.String(0), args.Error(1)
}

func (m *MockGitHubClient) UpdateProjectItemField(ctx context.Context, projectID, itemID, fieldID string, value models.ProjectFieldValue) error {
	args := m.Called(ctx, projectID, itemID, fieldID, value)
	return args.Error(0)
}

package server

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/thomas-vilte/ghdash/internal/models"
)

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Chat(ctx context.Context, req models.ChatRequest) (models.ChatResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.ChatResult), args.Error(1)
}

type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, req models.SummarizeRequest) *models.SummaryResponse {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.SummaryResponse)
	return resp
}

type MockPrioritizer struct {
	mock.Mock
}

func (m *MockPrioritizer) Prioritize(ctx context.Context, issues []models.IssueRef) []models.ItemID {
	args := m.Called(ctx, issues)
	ids, _ := args.Get(0).([]models.ItemID)
	return ids
}

type MockActivityLister struct {
	mock.Mock
}

func (m *MockActivityLister) MyActivity(ctx context.Context, token string) []models.ActivityItem {
	args := m.Called(ctx, token)
	items, _ := args.Get(0).([]models.ActivityItem)
	return items
}

type MockIssueManager struct {
	mock.Mock
}

func (m *MockIssueManager) CreateIssue(ctx context.Context, req models.CreateIssueRequest) models.CreateIssueResult {
	args := m.Called(ctx, req)
	return args.Get(0).(models.CreateIssueResult)
}

func (m *MockIssueManager) CreateIssueWithProject(ctx context.Context, req models.CreateIssueWithProjectRequest) models.CreateIssueResult {
	args := m.Called(ctx, req)
	return args.Get(0).(models.CreateIssueResult)
}

func (m *MockIssueManager) ListProjects(ctx context.Context, repo string) ([]models.Project, error) {
	args := m.Called(ctx, repo)
	projects, _ := args.Get(0).([]models.Project)
	return projects, args.Error(1)
}

func (m *MockIssueManager) ListProjectFields(ctx context.Context, projectID string) ([]models.ProjectField, error) {
	args := m.Called(ctx, projectID)
	fields, _ := args.Get(0).([]models.ProjectField)
	return fields, args.Error(1)
}

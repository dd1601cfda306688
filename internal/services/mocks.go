package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/thomas-vilte/ghdash/internal/models"
)

type MockReadinessDetector struct {
	mock.Mock
}

func (m *MockReadinessDetector) Detect(ctx context.Context, message string) bool {
	args := m.Called(ctx, message)
	return args.Bool(0)
}

type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) Get(ctx context.Context, id string) (*models.SummaryResponse, bool, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.SummaryResponse)
	return resp, args.Bool(1), args.Error(2)
}

func (m *MockSummaryCache) Set(ctx context.Context, id string, resp *models.SummaryResponse) error {
	args := m.Called(ctx, id, resp)
	return args.Error(0)
}

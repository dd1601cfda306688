package ai

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/thomas-vilte/ghdash/internal/models"
)

type MockChatModel struct {
	mock.Mock
}

func (m *MockChatModel) Generate(ctx context.Context, req Request) (*models.ModelResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModelResponse), args.Error(1)
}

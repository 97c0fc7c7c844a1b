package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/finsync/reality-lens/internal/model"
)

type mockProfileLoader struct {
	mock.Mock
}

func (m *mockProfileLoader) Load(ctx context.Context, userID string) model.FinancialSnapshot {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.FinancialSnapshot)
}

type mockIdentifier struct {
	mock.Mock
}

func (m *mockIdentifier) Identify(ctx context.Context, imageBytes []byte) (string, error) {
	args := m.Called(ctx, imageBytes)
	return args.String(0), args.Error(1)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, productName string) string {
	args := m.Called(ctx, productName)
	return args.String(0)
}

type mockAnalyst struct {
	mock.Mock
}

func (m *mockAnalyst) Analyze(ctx context.Context, productName, priceEvidence string, snapshot model.FinancialSnapshot) (*model.AnalysisResult, error) {
	args := m.Called(ctx, productName, priceEvidence, snapshot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalysisResult), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveRun(ctx context.Context, userID string, result model.AnalysisResult, failed bool) (*model.ScanRun, error) {
	args := m.Called(ctx, userID, result, failed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScanRun), args.Error(1)
}

func (m *mockStore) ListRecent(ctx context.Context, userID string, limit int) ([]model.ScanRun, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ScanRun), args.Error(1)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}

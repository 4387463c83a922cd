// internal/mocks/mocks.go
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/domain/entity"
)

// MockRateSource mocks the RateSource interface
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchQuotes(ctx context.Context, date time.Time) ([]entity.RateQuote, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RateQuote), args.Error(1)
}

// MockRateRepository mocks the RateRepository interface
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindQuotes(ctx context.Context, currencies []string, date time.Time) ([]entity.RateQuote, error) {
	args := m.Called(ctx, currencies, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RateQuote), args.Error(1)
}

func (m *MockRateRepository) StoreQuotes(ctx context.Context, date time.Time, quotes []entity.RateQuote) error {
	args := m.Called(ctx, date, quotes)
	return args.Error(0)
}

// MockReportBuilder mocks the ws.ReportBuilder interface
type MockReportBuilder struct {
	mock.Mock
}

func (m *MockReportBuilder) BuildReport(ctx context.Context, days int) (string, error) {
	args := m.Called(ctx, days)
	return args.String(0), args.Error(1)
}

// MockJournal mocks the ws.Journal interface
type MockJournal struct {
	mock.Mock
}

func (m *MockJournal) Append(text string) error {
	args := m.Called(text)
	return args.Error(0)
}

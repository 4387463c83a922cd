// internal/application/service/exchange_service_test.go
package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/domain/entity"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/cache"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/logger"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/mocks"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
}

func testQuotes(date time.Time) []entity.RateQuote {
	return []entity.RateQuote{
		{Currency: "USD", Date: date, Sale: 37.45, Buy: 37.2},
		{Currency: "EUR", Date: date, Sale: 40.7, Buy: 40.1},
		{Currency: "PLN", Date: date, Sale: 9.5, Buy: 9.1},
	}
}

func newTestService(source *mocks.MockRateSource, repo *mocks.MockRateRepository) *ExchangeService {
	log := logger.NewJSONLogger(nil, logger.ErrorLevel)
	var svc *ExchangeService
	if repo == nil {
		svc = NewExchangeService(source, nil, cache.NewQuoteCache(time.Hour), []string{"USD", "EUR"}, 10, log)
	} else {
		svc = NewExchangeService(source, repo, cache.NewQuoteCache(time.Hour), []string{"USD", "EUR"}, 10, log)
	}
	svc.now = fixedNow
	return svc
}

func TestBuildReport(t *testing.T) {
	ctx := context.Background()

	t.Run("Single day report", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		svc := newTestService(source, nil)

		today := fixedNow()
		source.On("FetchQuotes", ctx, today).Return(testQuotes(today), nil).Once()

		report, err := svc.BuildReport(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t,
			"05.03.2024, Course USD:\nSelling 37.45, Buy 37.2\n"+
				"05.03.2024, Course EUR:\nSelling 40.7, Buy 40.1\n",
			report)
		source.AssertExpectations(t)
	})

	t.Run("Multi-day report is most recent first", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		svc := newTestService(source, nil)

		today := fixedNow()
		yesterday := today.AddDate(0, 0, -1)
		source.On("FetchQuotes", ctx, today).Return(testQuotes(today), nil).Once()
		source.On("FetchQuotes", ctx, yesterday).Return(testQuotes(yesterday), nil).Once()

		report, err := svc.BuildReport(ctx, 2)

		require.NoError(t, err)
		first := "05.03.2024, Course USD"
		second := "04.03.2024, Course USD"
		assert.Contains(t, report, first)
		assert.Contains(t, report, second)
		assert.Less(t, strings.Index(report, first), strings.Index(report, second))
		source.AssertExpectations(t)
	})

	t.Run("Day span is clamped", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		svc := newTestService(source, nil)
		svc.maxDays = 2

		today := fixedNow()
		source.On("FetchQuotes", ctx, today).Return(testQuotes(today), nil).Once()
		source.On("FetchQuotes", ctx, today.AddDate(0, 0, -1)).Return(testQuotes(today.AddDate(0, 0, -1)), nil).Once()

		_, err := svc.BuildReport(ctx, 50)

		require.NoError(t, err)
		source.AssertExpectations(t)
	})

	t.Run("Failure on any date aborts the report", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		svc := newTestService(source, nil)

		today := fixedNow()
		source.On("FetchQuotes", ctx, today).Return(testQuotes(today), nil).Once()
		source.On("FetchQuotes", ctx, today.AddDate(0, 0, -1)).
			Return(nil, errors.New("connection refused")).Once()

		report, err := svc.BuildReport(ctx, 2)

		assert.Error(t, err)
		assert.Empty(t, report)
		assert.Contains(t, err.Error(), "04.03.2024")
		source.AssertExpectations(t)
	})

	t.Run("Second build hits the cache", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		svc := newTestService(source, nil)

		today := fixedNow()
		source.On("FetchQuotes", ctx, today).Return(testQuotes(today), nil).Once()

		first, err := svc.BuildReport(ctx, 1)
		require.NoError(t, err)

		second, err := svc.BuildReport(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		// FetchQuotes was called exactly once
		source.AssertExpectations(t)
	})

	t.Run("Persisted history is used before the network", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		repo := new(mocks.MockRateRepository)
		svc := newTestService(source, repo)

		today := fixedNow()
		stored := []entity.RateQuote{
			{Currency: "USD", Date: today, Sale: 37.45, Buy: 37.2},
			{Currency: "EUR", Date: today, Sale: 40.7, Buy: 40.1},
		}
		repo.On("FindQuotes", ctx, []string{"USD", "EUR"}, today).Return(stored, nil).Once()

		report, err := svc.BuildReport(ctx, 1)

		require.NoError(t, err)
		assert.Contains(t, report, "Course USD")
		repo.AssertExpectations(t)
		source.AssertNotCalled(t, "FetchQuotes")
	})

	t.Run("Incomplete history falls through to the network and persists", func(t *testing.T) {
		source := new(mocks.MockRateSource)
		repo := new(mocks.MockRateRepository)
		svc := newTestService(source, repo)

		today := fixedNow()
		repo.On("FindQuotes", ctx, []string{"USD", "EUR"}, today).
			Return([]entity.RateQuote{}, nil).Once()
		source.On("FetchQuotes", ctx, today).Return(testQuotes(today), nil).Once()
		repo.On("StoreQuotes", ctx, today, testQuotes(today)[:2]).Return(nil).Once()

		report, err := svc.BuildReport(ctx, 1)

		require.NoError(t, err)
		assert.NotContains(t, report, "PLN")
		repo.AssertExpectations(t)
		source.AssertExpectations(t)
	})
}

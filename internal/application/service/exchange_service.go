// Package service internal/application/service/exchange_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/domain/entity"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/domain/repository"
	domain "github.com/YanaYakovleva2018/exchange-chat-relay/internal/domain/service"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/cache"
	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/logger"
)

// ExchangeService builds exchange-rate reports over a span of calendar days
type ExchangeService struct {
	source     domain.RateSource
	repo       repository.RateRepository
	cache      *cache.QuoteCache
	logger     logger.Logger
	currencies []string
	maxDays    int
	now        func() time.Time
}

// NewExchangeService creates a new exchange service. The repository is
// optional; without it fetched quotes are only cached in memory.
func NewExchangeService(source domain.RateSource, repo repository.RateRepository, quoteCache *cache.QuoteCache, currencies []string, maxDays int, log logger.Logger) *ExchangeService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}
	if len(currencies) == 0 {
		currencies = []string{"USD", "EUR"}
	}
	if maxDays <= 0 {
		maxDays = 10
	}
	if quoteCache == nil {
		quoteCache = cache.NewQuoteCache(time.Hour)
	}

	return &ExchangeService{
		source:     source,
		repo:       repo,
		cache:      quoteCache,
		logger:     log,
		currencies: currencies,
		maxDays:    maxDays,
		now:        time.Now,
	}
}

// BuildReport renders the tracked currencies' quotes for the last `days`
// calendar days, most recent first. A failure on any single date aborts the
// whole report.
func (s *ExchangeService) BuildReport(ctx context.Context, days int) (string, error) {
	if days < 1 {
		days = 1
	}
	if days > s.maxDays {
		s.logger.Debug("Clamping requested day span", map[string]interface{}{
			"requested": days,
			"max_days":  s.maxDays,
		})
		days = s.maxDays
	}

	today := s.now()
	var report strings.Builder

	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, -i)

		quotes, err := s.quotesFor(ctx, date)
		if err != nil {
			return "", fmt.Errorf("failed to get quotes for %s: %w", date.Format(entity.QuoteDateFormat), err)
		}

		for _, quote := range quotes {
			report.WriteString(quote.Render())
		}
	}

	return report.String(), nil
}

// quotesFor resolves one date's tracked quotes: memory cache, then the
// persisted history, then the network.
func (s *ExchangeService) quotesFor(ctx context.Context, date time.Time) ([]entity.RateQuote, error) {
	if cached := s.cache.Get(date); cached != nil {
		return cached, nil
	}

	if s.repo != nil {
		stored, err := s.repo.FindQuotes(ctx, s.currencies, date)
		if err != nil {
			s.logger.Warn("Quote history lookup failed", map[string]interface{}{
				"date":  date.Format(entity.QuoteDateFormat),
				"error": err.Error(),
			})
		} else if len(stored) == len(s.currencies) {
			s.cache.Put(date, stored)
			return stored, nil
		}
	}

	fetched, err := s.source.FetchQuotes(ctx, date)
	if err != nil {
		return nil, err
	}

	quotes := s.filter(fetched)

	s.cache.Put(date, quotes)
	if s.repo != nil {
		if err := s.repo.StoreQuotes(ctx, date, quotes); err != nil {
			s.logger.Warn("Failed to persist quotes", map[string]interface{}{
				"date":  date.Format(entity.QuoteDateFormat),
				"error": err.Error(),
			})
		}
	}

	return quotes, nil
}

// filter keeps tracked currencies, in configured order
func (s *ExchangeService) filter(fetched []entity.RateQuote) []entity.RateQuote {
	quotes := make([]entity.RateQuote, 0, len(s.currencies))
	for _, currency := range s.currencies {
		for _, quote := range fetched {
			if quote.Currency == currency {
				quotes = append(quotes, quote)
				break
			}
		}
	}
	return quotes
}

// Package repository internal/domain/repository/rate_repository.go
package repository

import (
	"context"
	"time"

	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/domain/entity"
)

// RateRepository defines the interface for persisted quote history
type RateRepository interface {
	// FindQuotes retrieves the stored quotes for the given currencies on a date.
	// A date with no stored quotes yields an empty slice, not an error.
	FindQuotes(ctx context.Context, currencies []string, date time.Time) ([]entity.RateQuote, error)

	// StoreQuotes saves the quotes fetched for a date
	StoreQuotes(ctx context.Context, date time.Time, quotes []entity.RateQuote) error
}

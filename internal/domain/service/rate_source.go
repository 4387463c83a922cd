package service

import (
	"context"
	"time"

	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/domain/entity"
)

// RateSource defines the interface for the external rate-quote endpoint
type RateSource interface {
	// FetchQuotes retrieves every quote published for a calendar date
	FetchQuotes(ctx context.Context, date time.Time) ([]entity.RateQuote, error)
}

package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/domain/entity"
)

const ratePrefix = "rates:"

// BadgerRateRepository implements the rate repository interface using BadgerDB
type BadgerRateRepository struct {
	db *badger.DB
}

// NewBadgerRateRepository creates a new BadgerDB quote repository
func NewBadgerRateRepository(db *badger.DB) *BadgerRateRepository {
	return &BadgerRateRepository{db: db}
}

func rateKey(date time.Time, currency string) []byte {
	return []byte(ratePrefix + date.Format(entity.QuoteDateFormat) + ":" + currency)
}

// StoreQuotes saves the quotes fetched for a date
func (r *BadgerRateRepository) StoreQuotes(ctx context.Context, date time.Time, quotes []entity.RateQuote) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		for _, quote := range quotes {
			data, err := json.Marshal(quote)
			if err != nil {
				return fmt.Errorf("failed to marshal quote: %w", err)
			}
			if err := txn.Set(rateKey(date, quote.Currency), data); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to store quotes: %w", err)
	}

	return nil
}

// FindQuotes retrieves the stored quotes for the given currencies on a date.
// Currencies with no stored quote are skipped.
func (r *BadgerRateRepository) FindQuotes(ctx context.Context, currencies []string, date time.Time) ([]entity.RateQuote, error) {
	var quotes []entity.RateQuote

	err := r.db.View(func(txn *badger.Txn) error {
		for _, currency := range currencies {
			item, err := txn.Get(rateKey(date, currency))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			var quote entity.RateQuote
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &quote)
			}); err != nil {
				return err
			}
			quotes = append(quotes, quote)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve quotes: %w", err)
	}

	return quotes, nil
}

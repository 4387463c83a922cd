// internal/infrastructure/db/badger_rate_repository_test.go
package db

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/domain/entity"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil

	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	return db
}

func TestBadgerRateRepository(t *testing.T) {
	repo := NewBadgerRateRepository(openTestDB(t))
	ctx := context.Background()
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	quotes := []entity.RateQuote{
		{Currency: "USD", Date: date, Sale: 37.45, Buy: 37.2},
		{Currency: "EUR", Date: date, Sale: 40.7, Buy: 40.1},
	}

	t.Run("Store and find quotes", func(t *testing.T) {
		require.NoError(t, repo.StoreQuotes(ctx, date, quotes))

		found, err := repo.FindQuotes(ctx, []string{"USD", "EUR"}, date)
		require.NoError(t, err)
		assert.Equal(t, quotes, found)
	})

	t.Run("Missing currencies are skipped", func(t *testing.T) {
		found, err := repo.FindQuotes(ctx, []string{"USD", "GBP"}, date)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "USD", found[0].Currency)
	})

	t.Run("Unknown date yields no quotes", func(t *testing.T) {
		found, err := repo.FindQuotes(ctx, []string{"USD", "EUR"}, date.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("Storing again overwrites", func(t *testing.T) {
		updated := []entity.RateQuote{
			{Currency: "USD", Date: date, Sale: 38, Buy: 37.5},
		}
		require.NoError(t, repo.StoreQuotes(ctx, date, updated))

		found, err := repo.FindQuotes(ctx, []string{"USD"}, date)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, 38.0, found[0].Sale)
	})
}

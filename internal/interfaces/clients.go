// Package interfaces defines service contracts for Asset Cockpit
package interfaces

import (
	"context"
	"time"

	"github.com/nyontakai/Asset-Cockpit/internal/models"
)

// MarketDataClient provides access to the external market-data provider.
// The provider supports one batched endpoint (daily bars) and three
// single-ticker endpoints.
type MarketDataClient interface {
	// GetDailyBars retrieves recent daily bars for multiple tickers in one
	// call. Bars are ordered most recent first. Tickers the provider knows
	// nothing about are simply absent from the result.
	GetDailyBars(ctx context.Context, tickers []string, from, to time.Time) (map[string][]models.Bar, error)

	// GetInfo retrieves the attribute bag for a single ticker.
	GetInfo(ctx context.Context, ticker string) (*models.Metadata, error)

	// GetDividends retrieves the recorded ex-dividend event series for a
	// single ticker within a date range.
	GetDividends(ctx context.Context, ticker string, from, to time.Time) ([]models.DividendEvent, error)

	// GetHistory retrieves daily bars with dividend amounts for a single
	// ticker, used as a fallback when the dividend event series is empty.
	GetHistory(ctx context.Context, ticker string, from, to time.Time) ([]models.Bar, error)
}

package interfaces

import (
	"context"

	"github.com/nyontakai/Asset-Cockpit/internal/models"
)

// QuoteService retrieves near-real-time quotes for a set of tickers.
type QuoteService interface {
	// GetQuotes returns a quote per ticker. Tickers with no usable price
	// data are absent from the result, never an error. The result is
	// cached briefly, keyed by the exact input ticker list.
	GetQuotes(ctx context.Context, tickers []string) map[string]*models.Quote

	// Invalidate drops the quote cache.
	Invalidate()
}

// MetadataService resolves per-ticker metadata through a process-lifetime
// memory tier backed by the persisted metadata cache.
type MetadataService interface {
	// Resolve returns metadata for every requested ticker. Tickers that
	// could not be fetched map to an empty Metadata, never to nil.
	Resolve(ctx context.Context, tickers []string) map[string]*models.Metadata

	// Invalidate clears the memory tier only. The persisted tier is
	// untouched and will reseed the memory tier on the next resolve.
	Invalidate()

	// Purge clears the memory tier and deletes the persisted cache,
	// forcing a full provider re-fetch.
	Purge(ctx context.Context) error
}

// DividendService infers the calendar months in which a ticker pays
// dividends.
type DividendService interface {
	// PaymentMonths returns the distinct estimated payment months (1-12)
	// for a ticker. An empty slice means no projected dividends.
	PaymentMonths(ctx context.Context, ticker string) []int

	// Invalidate drops the schedule cache.
	Invalidate()
}

// SnapshotService computes the portfolio snapshot.
type SnapshotService interface {
	// ComputeSnapshot aggregates quotes, metadata, and dividend schedules
	// into one immutable snapshot. It is idempotent; callers decide whether
	// to retry on error.
	ComputeSnapshot(ctx context.Context, holdings models.Holdings) (*models.PortfolioSnapshot, error)
}

// Package quote provides the bulk quote fetcher with a short-lived cache
package quote

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nyontakai/Asset-Cockpit/internal/common"
	"github.com/nyontakai/Asset-Cockpit/internal/interfaces"
	"github.com/nyontakai/Asset-Cockpit/internal/models"
)

// BatchSize is the provider's multi-ticker request limit.
const BatchSize = 50

// lookbackDays is the calendar window requested per batch; wide enough to
// contain the last 5 trading days across weekends and holidays.
const lookbackDays = 9

// Service implements QuoteService. Results are cached for
// common.FreshnessQuotes, keyed by the exact input ticker list
// (value-of-arguments: a reordered or different list is a miss).
type Service struct {
	client interfaces.MarketDataClient
	logger *common.Logger
	now    func() time.Time // injectable clock for testing

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	quotes    map[string]*models.Quote
	fetchedAt time.Time
}

// NewService creates a new quote service.
func NewService(client interfaces.MarketDataClient, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
		now:    time.Now,
		cache:  make(map[string]cacheEntry),
	}
}

// GetQuotes returns a quote per ticker with usable price data. Tickers with
// fewer than two valid daily closes are absent from the result. A failed
// batch is swallowed: its tickers have no quote, other batches proceed.
func (s *Service) GetQuotes(ctx context.Context, tickers []string) map[string]*models.Quote {
	if len(tickers) == 0 {
		return map[string]*models.Quote{}
	}

	key := strings.Join(tickers, "\x1f")
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.cache[key]; ok && common.IsFreshAt(entry.fetchedAt, common.FreshnessQuotes, now) {
		return entry.quotes
	}

	quotes := make(map[string]*models.Quote)
	from := now.AddDate(0, 0, -lookbackDays)

	for i := 0; i < len(tickers); i += BatchSize {
		end := i + BatchSize
		if end > len(tickers) {
			end = len(tickers)
		}
		batch := tickers[i:end]

		bars, err := s.client.GetDailyBars(ctx, batch, from, now)
		if err != nil {
			s.logger.Warn().Err(err).Int("batch_start", i).Int("batch_size", len(batch)).
				Msg("Quote batch failed, skipping")
			continue
		}

		for _, ticker := range batch {
			if q := extractQuote(bars[ticker]); q != nil {
				quotes[ticker] = q
			}
		}
	}

	s.pruneExpired(now)
	s.cache[key] = cacheEntry{quotes: quotes, fetchedAt: now}

	return quotes
}

// extractQuote derives a quote from daily bars: bars without a close are
// dropped, and at least two valid closes are required. The most recent valid
// close is the price, the second most recent the previous close.
func extractQuote(bars []models.Bar) *models.Quote {
	valid := make([]models.Bar, 0, len(bars))
	for _, b := range bars {
		if b.Close != nil {
			valid = append(valid, b)
		}
	}
	if len(valid) < 2 {
		return nil
	}

	// Most recent first regardless of provider ordering.
	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Date.After(valid[j].Date)
	})

	price := *valid[0].Close
	prevClose := *valid[1].Close
	if prevClose == 0 {
		return nil
	}

	return &models.Quote{
		Price:     price,
		PrevClose: prevClose,
		ChangeAbs: price - prevClose,
		ChangePct: (price - prevClose) / prevClose * 100,
	}
}

// pruneExpired drops cache entries past their TTL. Caller holds s.mu.
func (s *Service) pruneExpired(now time.Time) {
	for key, entry := range s.cache {
		if !common.IsFreshAt(entry.fetchedAt, common.FreshnessQuotes, now) {
			delete(s.cache, key)
		}
	}
}

// Invalidate drops the quote cache.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]cacheEntry)
}

// Ensure Service implements QuoteService
var _ interfaces.QuoteService = (*Service)(nil)

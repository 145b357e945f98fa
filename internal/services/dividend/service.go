// Package dividend infers per-ticker dividend payment months
package dividend

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nyontakai/Asset-Cockpit/internal/common"
	"github.com/nyontakai/Asset-Cockpit/internal/interfaces"
	"github.com/nyontakai/Asset-Cockpit/internal/models"
)

// historyMonths is the trailing window of ex-dividend events considered.
const historyMonths = 24

// payMonthOffset estimates the payment month from the ex-dividend month.
// Tokyo-market dividends typically settle about a quarter after the
// ex-dividend date (March record -> June payment).
const payMonthOffset = 3

// Service implements DividendService. Inferred schedules are cached for
// common.FreshnessDividendSchedule, keyed by ticker id. Schedules are not
// persisted across restarts.
type Service struct {
	client interfaces.MarketDataClient
	logger *common.Logger
	now    func() time.Time // injectable clock for testing

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	months    []int
	fetchedAt time.Time
}

// NewService creates a new dividend schedule service.
func NewService(client interfaces.MarketDataClient, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
		now:    time.Now,
		cache:  make(map[string]cacheEntry),
	}
}

// PaymentMonths returns the distinct estimated payment months (1-12) for a
// ticker. An empty slice means no projected dividends. Fetch failures are
// swallowed and resolve to the market default.
func (s *Service) PaymentMonths(ctx context.Context, ticker string) []int {
	now := s.now()

	s.mu.Lock()
	if entry, ok := s.cache[ticker]; ok && common.IsFreshAt(entry.fetchedAt, common.FreshnessDividendSchedule, now) {
		s.mu.Unlock()
		return entry.months
	}
	s.mu.Unlock()

	months := s.infer(ctx, ticker, now)

	s.mu.Lock()
	s.cache[ticker] = cacheEntry{months: months, fetchedAt: now}
	s.mu.Unlock()

	return months
}

// infer derives the payment months from the dividend event series, falling
// back to the price/dividend history and finally to the market default.
func (s *Service) infer(ctx context.Context, ticker string, now time.Time) []int {
	from := now.AddDate(0, -historyMonths, 0)

	events, err := s.client.GetDividends(ctx, ticker, from, now)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Dividend series fetch failed, using market default")
		return marketDefault(ticker)
	}

	if len(events) == 0 {
		bars, err := s.client.GetHistory(ctx, ticker, from, now)
		if err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("History fallback fetch failed, using market default")
			return marketDefault(ticker)
		}
		for _, bar := range bars {
			if bar.Dividend > 0 {
				events = append(events, models.DividendEvent{Date: bar.Date, Amount: bar.Dividend})
			}
		}
	}

	if len(events) == 0 {
		return marketDefault(ticker)
	}

	// Distinct ex-dividend months within the trailing window, shifted to
	// estimated payment months.
	seen := make(map[int]bool)
	for _, event := range events {
		if event.Date.Before(from) {
			continue
		}
		exMonth := int(event.Date.Month())
		payMonth := exMonth + payMonthOffset
		if payMonth > 12 {
			payMonth -= 12
		}
		seen[payMonth] = true
	}

	if len(seen) == 0 {
		return marketDefault(ticker)
	}

	months := make([]int, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

// marketDefault is the schedule assumed when no dividend history exists.
// Tokyo-market tickers overwhelmingly pay in June and December; for other
// markets nothing is projected rather than guessed.
func marketDefault(ticker string) []int {
	if models.IsTokyoTicker(ticker) {
		return []int{6, 12}
	}
	return []int{}
}

// Invalidate drops the schedule cache.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]cacheEntry)
}

// Ensure Service implements DividendService
var _ interfaces.DividendService = (*Service)(nil)

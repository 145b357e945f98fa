// Package metadata provides the two-tier per-ticker metadata resolver
package metadata

import (
	"context"
	"sync"

	"github.com/nyontakai/Asset-Cockpit/internal/common"
	"github.com/nyontakai/Asset-Cockpit/internal/interfaces"
	"github.com/nyontakai/Asset-Cockpit/internal/models"
)

// flushEvery is how many fresh provider fetches may accumulate before the
// cache is persisted mid-loop. A crash during a long backfill loses at most
// flushEvery-1 entries.
const flushEvery = 10

// Service implements MetadataService. The memory tier lives for the process
// lifetime and is seeded once from the persisted metadata cache; misses are
// fetched from the provider one ticker at a time (the provider's metadata
// endpoint is single-ticker only). Records have no TTL; only Invalidate or
// Purge removes them.
type Service struct {
	client interfaces.MarketDataClient
	store  interfaces.ConfigStore
	logger *common.Logger

	mu     sync.Mutex
	seeded bool
	cache  models.MetadataDB
}

// NewService creates a new metadata service.
func NewService(client interfaces.MarketDataClient, store interfaces.ConfigStore, logger *common.Logger) *Service {
	return &Service{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Resolve returns metadata for every requested ticker. A ticker whose fetch
// failed maps to an empty Metadata and is not cached, so it is retried on
// the next resolve.
func (s *Service) Resolve(ctx context.Context, tickers []string) map[string]*models.Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seedLocked(ctx)

	var missing []string
	for _, ticker := range tickers {
		if _, ok := s.cache[ticker]; !ok {
			missing = append(missing, ticker)
		}
	}

	if len(missing) > 0 {
		s.logger.Info().Int("count", len(missing)).Msg("Fetching metadata for new tickers")

		fetched := 0
		for _, ticker := range missing {
			meta, err := s.client.GetInfo(ctx, ticker)
			if err != nil {
				s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Metadata fetch failed, skipping")
				continue
			}
			s.cache[ticker] = meta
			fetched++
			if fetched%flushEvery == 0 {
				s.flushLocked(ctx)
			}
		}
		if fetched > 0 {
			s.flushLocked(ctx)
		}
	}

	result := make(map[string]*models.Metadata, len(tickers))
	for _, ticker := range tickers {
		if meta, ok := s.cache[ticker]; ok {
			result[ticker] = meta
		} else {
			result[ticker] = &models.Metadata{}
		}
	}
	return result
}

// seedLocked loads the persisted tier into memory once per process lifetime.
// Caller holds s.mu.
func (s *Service) seedLocked(ctx context.Context) {
	if s.seeded {
		return
	}
	db, _ := s.store.LoadMetadataDB(ctx)
	s.cache = db
	s.seeded = true
	s.logger.Debug().Int("count", len(db)).Msg("Metadata cache seeded from disk")
}

// flushLocked persists the whole memory tier. A write failure is a warning;
// the memory tier stays authoritative. Caller holds s.mu.
func (s *Service) flushLocked(ctx context.Context) {
	if err := s.store.SaveMetadataDB(ctx, s.cache); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist metadata cache")
	}
}

// Invalidate clears the memory tier only; the persisted tier reseeds it on
// the next resolve.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = nil
	s.seeded = false
}

// Purge clears the memory tier and deletes the persisted cache, forcing a
// full provider re-fetch on the next resolve.
func (s *Service) Purge(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = models.MetadataDB{}
	s.seeded = true
	return s.store.DeleteMetadataDB(ctx)
}

// Ensure Service implements MetadataService
var _ interfaces.MetadataService = (*Service)(nil)

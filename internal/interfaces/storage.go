package interfaces

import (
	"context"

	"github.com/nyontakai/Asset-Cockpit/internal/models"
)

// ConfigStore persists the two durable JSON documents: the user holdings
// configuration and the long-lived metadata cache.
//
// Loads never fail on a missing or corrupt file; they return an empty
// mapping so a fresh or damaged data directory behaves like an empty
// portfolio. Save errors are returned for the caller to log as a non-fatal
// warning; in-memory state remains authoritative for the session.
type ConfigStore interface {
	LoadHoldings(ctx context.Context) (models.Holdings, error)
	SaveHoldings(ctx context.Context, holdings models.Holdings) error

	LoadMetadataDB(ctx context.Context) (models.MetadataDB, error)
	SaveMetadataDB(ctx context.Context, db models.MetadataDB) error

	// DeleteMetadataDB removes the persisted metadata cache document,
	// forcing a full provider re-fetch on the next resolve.
	DeleteMetadataDB(ctx context.Context) error
}

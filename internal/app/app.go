// Package app wires configuration, storage, clients and services into a
// single application core shared by the server entrypoint and tests.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nyontakai/Asset-Cockpit/internal/clients/marketdata"
	"github.com/nyontakai/Asset-Cockpit/internal/common"
	"github.com/nyontakai/Asset-Cockpit/internal/interfaces"
	"github.com/nyontakai/Asset-Cockpit/internal/services/dividend"
	"github.com/nyontakai/Asset-Cockpit/internal/services/metadata"
	"github.com/nyontakai/Asset-Cockpit/internal/services/portfolio"
	"github.com/nyontakai/Asset-Cockpit/internal/services/quote"
	"github.com/nyontakai/Asset-Cockpit/internal/storage"
)

// App holds all initialized services and clients.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Store            interfaces.ConfigStore
	MarketDataClient interfaces.MarketDataClient
	QuoteService     interfaces.QuoteService
	MetadataService  interfaces.MetadataService
	DividendService  interfaces.DividendService
	SnapshotService  interfaces.SnapshotService
	Namer            *portfolio.Namer
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes the application core. configPath may be empty, in which
// case COCKPIT_CONFIG, then cockpit.toml next to the binary, then
// config/cockpit.toml are tried in order.
func NewApp(configPath string) (*App, error) {
	startupTime := time.Now()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("COCKPIT_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "cockpit.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/cockpit.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative data path to binary directory so the service is
	// self-contained wherever it is deployed.
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		if _, err := os.Stat(config.Storage.Path); os.IsNotExist(err) {
			config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
		}
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := storage.NewFileStore(logger, &config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if config.Clients.MarketData.APIKey == "" {
		logger.Warn().Msg("Market-data API key not configured - quote and metadata fetches will fail")
	}

	client := marketdata.NewClient(
		config.Clients.MarketData.APIKey,
		marketdata.WithBaseURL(config.Clients.MarketData.BaseURL),
		marketdata.WithRateLimit(config.Clients.MarketData.RateLimit),
		marketdata.WithTimeout(config.Clients.MarketData.GetTimeout()),
		marketdata.WithLogger(logger),
	)

	quoteService := quote.NewService(client, logger)
	metadataService := metadata.NewService(client, store, logger)
	dividendService := dividend.NewService(client, logger)
	namer := portfolio.NewNamer(config.Portfolio)
	snapshotService := portfolio.NewService(quoteService, metadataService, dividendService, namer, logger)

	logger.Info().
		Str("environment", config.Environment).
		Str("data_path", config.Storage.Path).
		Msg("Application initialized")

	return &App{
		Config:           config,
		Logger:           logger,
		Store:            store,
		MarketDataClient: client,
		QuoteService:     quoteService,
		MetadataService:  metadataService,
		DividendService:  dividendService,
		SnapshotService:  snapshotService,
		Namer:            namer,
		StartupTime:      startupTime,
	}, nil
}

// InvalidateCaches drops every in-memory cache. The persisted metadata cache
// is untouched and reseeds the metadata service on the next resolve.
func (a *App) InvalidateCaches() {
	a.QuoteService.Invalidate()
	a.MetadataService.Invalidate()
	a.DividendService.Invalidate()
}

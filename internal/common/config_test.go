package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	if config.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", config.Server.Port)
	}
	if config.Storage.Path != "data" {
		t.Errorf("Storage.Path = %q, want data", config.Storage.Path)
	}
	if config.Portfolio.DefaultShares != 100 {
		t.Errorf("DefaultShares = %d, want 100", config.Portfolio.DefaultShares)
	}
	if config.Portfolio.MarketSuffix != ".T" {
		t.Errorf("MarketSuffix = %q, want .T", config.Portfolio.MarketSuffix)
	}
	if config.IsProduction() {
		t.Error("default config should not be production")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cockpit.toml")
	content := `
environment = "production"

[server]
port = 9090

[clients.marketdata]
api_key = "test-key"
timeout = "5s"

[portfolio]
default_shares = 200
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !config.IsProduction() {
		t.Error("environment should be production")
	}
	if config.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", config.Server.Port)
	}
	if config.Clients.MarketData.APIKey != "test-key" {
		t.Errorf("APIKey = %q", config.Clients.MarketData.APIKey)
	}
	if got := config.Clients.MarketData.GetTimeout().Seconds(); got != 5 {
		t.Errorf("timeout = %vs, want 5s", got)
	}
	if config.Portfolio.DefaultShares != 200 {
		t.Errorf("DefaultShares = %d, want 200", config.Portfolio.DefaultShares)
	}
	// Untouched sections keep defaults.
	if config.Storage.Path != "data" {
		t.Errorf("Storage.Path = %q, want data", config.Storage.Path)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Server.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", config.Server.Port)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("COCKPIT_PORT", "7070")
	t.Setenv("COCKPIT_ENV", "production")
	t.Setenv("COCKPIT_MARKETDATA_API_KEY", "env-key")
	t.Setenv("COCKPIT_DATA_PATH", "/var/lib/cockpit")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Server.Port != 7070 {
		t.Errorf("Port = %d, want 7070", config.Server.Port)
	}
	if !config.IsProduction() {
		t.Error("environment should be production")
	}
	if config.Clients.MarketData.APIKey != "env-key" {
		t.Errorf("APIKey = %q", config.Clients.MarketData.APIKey)
	}
	if config.Storage.Path != "/var/lib/cockpit" {
		t.Errorf("Storage.Path = %q", config.Storage.Path)
	}
}

func TestMarketDataAPIKeyFallback(t *testing.T) {
	t.Setenv("MARKETDATA_API_KEY", "bare-key")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Clients.MarketData.APIKey != "bare-key" {
		t.Errorf("APIKey = %q, want bare-key", config.Clients.MarketData.APIKey)
	}

	// The prefixed variable wins over the bare one.
	t.Setenv("COCKPIT_MARKETDATA_API_KEY", "prefixed-key")
	config, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Clients.MarketData.APIKey != "prefixed-key" {
		t.Errorf("APIKey = %q, want prefixed-key", config.Clients.MarketData.APIKey)
	}
}

func TestFilePaths(t *testing.T) {
	config := NewDefaultConfig()
	config.Storage.Path = "/tmp/cockpit"

	if got := config.HoldingsFilePath(); got != filepath.Join("/tmp/cockpit", "holdings.json") {
		t.Errorf("HoldingsFilePath = %q", got)
	}
	if got := config.MetadataFilePath(); got != filepath.Join("/tmp/cockpit", "metadata_db.json") {
		t.Errorf("MetadataFilePath = %q", got)
	}
}

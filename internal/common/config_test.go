package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Ranking.TopN != 100 {
		t.Errorf("Ranking.TopN default = %d, want %d", cfg.Ranking.TopN, 100)
	}
	if cfg.Ranking.Columns.Identifier == "" {
		t.Error("Ranking.Columns.Identifier default is empty")
	}
	if cfg.Clients.Yahoo.BaseURL == "" {
		t.Error("Clients.Yahoo.BaseURL default is empty")
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("RANKSCREEN_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_RankingEnvOverrides(t *testing.T) {
	t.Setenv("RANKSCREEN_RANKING_PATH", "/tmp/other.csv")
	t.Setenv("RANKSCREEN_TOP_N", "25")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Ranking.Path != "/tmp/other.csv" {
		t.Errorf("Ranking.Path = %q, want %q", cfg.Ranking.Path, "/tmp/other.csv")
	}
	if cfg.Ranking.TopN != 25 {
		t.Errorf("Ranking.TopN = %d, want %d", cfg.Ranking.TopN, 25)
	}
}

func TestConfig_InvalidTopNEnvIgnored(t *testing.T) {
	t.Setenv("RANKSCREEN_TOP_N", "-3")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Ranking.TopN != 100 {
		t.Errorf("Ranking.TopN = %d, want default %d", cfg.Ranking.TopN, 100)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rankscreen.toml")

	content := `
environment = "production"

[server]
port = 9999

[ranking]
path = "scores.csv"
top_n = 10

[ranking.columns]
identifier = "Ticker"
overall = "Overall"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Ranking.Columns.Identifier != "Ticker" {
		t.Errorf("Columns.Identifier = %q, want %q", cfg.Ranking.Columns.Identifier, "Ticker")
	}
	// Unset file keys keep their defaults
	if cfg.Clients.Yahoo.RateLimit != 5 {
		t.Errorf("Yahoo.RateLimit = %d, want default 5", cfg.Clients.Yahoo.RateLimit)
	}
}

func TestLoadConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/rankscreen.toml")
	if err != nil {
		t.Fatalf("LoadConfig with missing file: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestYahooConfig_GetTimeout(t *testing.T) {
	c := YahooConfig{Timeout: "5s"}
	if c.GetTimeout().Seconds() != 5 {
		t.Errorf("GetTimeout() = %v, want 5s", c.GetTimeout())
	}

	c = YahooConfig{Timeout: "bogus"}
	if c.GetTimeout().Seconds() != 30 {
		t.Errorf("GetTimeout() fallback = %v, want 30s", c.GetTimeout())
	}
}

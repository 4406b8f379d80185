package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 8787 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 8787)
	}
	if cfg.Game.StartingCoins != -1 {
		t.Errorf("Game.StartingCoins = %d, want -1 (catalog value)", cfg.Game.StartingCoins)
	}
	if cfg.Game.BonusPercent != 20 {
		t.Errorf("Game.BonusPercent = %d, want %d", cfg.Game.BonusPercent, 20)
	}
	if cfg.Sessions.MaxSessions != 8 {
		t.Errorf("Sessions.MaxSessions = %d, want %d", cfg.Sessions.MaxSessions, 8)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be true by default")
	}
	if cfg.Journal.DSN != "" {
		t.Errorf("Journal.DSN = %q, want in-memory", cfg.Journal.DSN)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
[api]
port = 9000

[game]
starting_coins = 0
bonus_percent = 50

[sessions]
tick_interval = "250ms"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Port != 9000 || cfg.API.Host != "127.0.0.1" {
		t.Errorf("API = %+v", cfg.API)
	}
	if cfg.Game.StartingCoins != 0 || cfg.Game.BonusPercent != 50 {
		t.Errorf("Game = %+v", cfg.Game)
	}
	if got := cfg.SessionConfig().TickInterval; got != 250*time.Millisecond {
		t.Errorf("TickInterval = %s, want 250ms", got)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Port != DefaultConfig().API.Port {
		t.Errorf("missing file should yield defaults, got port %d", cfg.API.Port)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MONEYQUEST_API_PORT", "7000")
	t.Setenv("MONEYQUEST_GAME_BONUS_PERCENT", "0")
	t.Setenv("MONEYQUEST_METRICS_ENABLED", "false")
	t.Setenv("MONEYQUEST_JOURNAL_DSN", "file:debug.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Port != 7000 {
		t.Errorf("API.Port = %d, want 7000", cfg.API.Port)
	}
	if cfg.Game.BonusPercent != 0 {
		t.Errorf("Game.BonusPercent = %d, want 0", cfg.Game.BonusPercent)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be overridden to false")
	}
	if cfg.Journal.DSN != "file:debug.db" {
		t.Errorf("Journal.DSN = %q", cfg.Journal.DSN)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.API.Port = 0 }},
		{"port too high", func(c *Config) { c.API.Port = 70000 }},
		{"negative bonus", func(c *Config) { c.Game.BonusPercent = -1 }},
		{"no sessions", func(c *Config) { c.Sessions.MaxSessions = 0 }},
		{"bad tick", func(c *Config) { c.Sessions.TickInterval = "soon" }},
		{"zero tick", func(c *Config) { c.Sessions.TickInterval = "0s" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAddr(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Addr(); got != "127.0.0.1:8787" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestEngagementConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Game.StartingCoins = 75
	got := cfg.EngagementConfig()
	if got.StartingCoins != 75 || got.BonusPercent != 20 {
		t.Errorf("EngagementConfig() = %+v", got)
	}
}

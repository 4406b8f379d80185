// Package daemon holds the process configuration for the moneyquest server.
package daemon

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/moneyquest/moneyquest/internal/app/engagement"
	"github.com/moneyquest/moneyquest/internal/app/minigame"
	"github.com/moneyquest/moneyquest/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. MONEYQUEST_API_PORT.
const EnvPrefix = "MONEYQUEST_"

// Config is the full moneyquest configuration (config.toml).
type Config struct {
	API      APIConfig      `toml:"api" envPrefix:"API_"`
	Game     GameConfig     `toml:"game" envPrefix:"GAME_"`
	Sessions SessionsConfig `toml:"sessions" envPrefix:"SESSIONS_"`
	Metrics  MetricsConfig  `toml:"metrics" envPrefix:"METRICS_"`
	Log      LogConfig      `toml:"log" envPrefix:"LOG_"`
	Journal  JournalConfig  `toml:"journal" envPrefix:"JOURNAL_"`
}

// APIConfig controls the local HTTP bridge.
type APIConfig struct {
	Host string `toml:"host" env:"HOST"`
	Port int    `toml:"port" env:"PORT"`
}

// GameConfig controls seed content and reward tuning.
type GameConfig struct {
	CatalogPath   string `toml:"catalog_path" env:"CATALOG_PATH"`     // empty = embedded catalog
	StartingCoins int64  `toml:"starting_coins" env:"STARTING_COINS"` // negative = catalog value
	BonusPercent  int    `toml:"bonus_percent" env:"BONUS_PERCENT"`
}

// SessionsConfig controls timed mini-game sessions.
type SessionsConfig struct {
	TickInterval string `toml:"tick_interval" env:"TICK_INTERVAL"`
	MaxSessions  int    `toml:"max_sessions" env:"MAX_SESSIONS"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled" env:"ENABLED"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `toml:"level" env:"LEVEL"`
}

// JournalConfig selects the sqlite database for the coin journal and the
// notification inbox. Empty means in-memory.
type JournalConfig struct {
	DSN string `toml:"dsn" env:"DSN"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8787,
		},
		Game: GameConfig{
			StartingCoins: -1,
			BonusPercent:  engagement.DefaultBonusPercent,
		},
		Sessions: SessionsConfig{
			TickInterval: "1s",
			MaxSessions:  8,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, then applies MONEYQUEST_* environment
// overrides. A missing file is not an error; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultPath returns $MONEYQUEST_HOME/config.toml, or ~/.moneyquest/config.toml.
func DefaultPath() string {
	if home := os.Getenv("MONEYQUEST_HOME"); home != "" {
		return filepath.Join(home, "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".moneyquest", "config.toml")
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port %d out of range", c.API.Port)
	}
	if c.Game.BonusPercent < 0 {
		return fmt.Errorf("game.bonus_percent must not be negative, got %d", c.Game.BonusPercent)
	}
	if c.Sessions.MaxSessions <= 0 {
		return fmt.Errorf("sessions.max_sessions must be positive, got %d", c.Sessions.MaxSessions)
	}
	if _, err := c.tickInterval(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Addr returns host:port for the HTTP listener.
func (c Config) Addr() string {
	return net.JoinHostPort(c.API.Host, strconv.Itoa(c.API.Port))
}

// EngagementConfig maps the [game] section onto the game core.
func (c Config) EngagementConfig() engagement.Config {
	return engagement.Config{
		StartingCoins: c.Game.StartingCoins,
		BonusPercent:  c.Game.BonusPercent,
	}
}

// SessionConfig maps the [sessions] section onto the session manager.
func (c Config) SessionConfig() minigame.Config {
	cfg := minigame.DefaultConfig()
	if d, err := c.tickInterval(); err == nil {
		cfg.TickInterval = d
	}
	cfg.MaxSessions = c.Sessions.MaxSessions
	return cfg
}

func (c Config) tickInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Sessions.TickInterval)
	if err != nil {
		return 0, fmt.Errorf("sessions.tick_interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("sessions.tick_interval must be positive, got %s", d)
	}
	return d, nil
}

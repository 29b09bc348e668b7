// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"football_bot/internal/catalog"
)

// Run modes.
const (
	RunModePolling = "polling"
	RunModeWebhook = "webhook"
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken string        `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	DatabasePath     string        `envconfig:"DATABASE_PATH" default:"./data/bot.db"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr         string        `envconfig:"HTTP_ADDR" default:":8080"`
	RunMode          string        `envconfig:"RUN_MODE" default:"polling"`
	WebAppURL        string        `envconfig:"WEBAPP_URL"`
	WebhookURL       string        `envconfig:"WEBHOOK_URL"`
	CatalogBaseURL   string        `envconfig:"CATALOG_BASE_URL" default:"https://www.thesportsdb.com/api/v1/json/3"`
	CacheTTL         time.Duration `envconfig:"CACHE_TTL" default:"30m"`
	UpstreamTimeout  time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"5s"`
	SyncInterval     time.Duration `envconfig:"SYNC_INTERVAL" default:"0s"`
	SyncLeagues      LeagueList    `envconfig:"SYNC_LEAGUES"`
	AllowedUsers     IDList        `envconfig:"ALLOWED_USERS"`
}

// StoreConfig is the subset of Config used by the maintenance tools, which run
// without a bot token.
type StoreConfig struct {
	DatabasePath   string `envconfig:"DATABASE_PATH" default:"./data/bot.db"`
	CatalogBaseURL string `envconfig:"CATALOG_BASE_URL" default:"https://www.thesportsdb.com/api/v1/json/3"`
}

// LoadStore reads StoreConfig from environment variables.
func LoadStore() (*StoreConfig, error) {
	var cfg StoreConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return &cfg, nil
}

// IDList is a comma separated list of Telegram user ids. Blank entries are skipped.
type IDList []int64

// Decode implements envconfig.Decoder.
func (l *IDList) Decode(value string) error {
	var ids IDList
	for _, s := range strings.Split(value, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		uid, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user ID %q: %w", s, err)
		}
		ids = append(ids, uid)
	}
	*l = ids
	return nil
}

// LeagueList is a comma separated list of provider league names.
type LeagueList []string

// Decode implements envconfig.Decoder.
func (l *LeagueList) Decode(value string) error {
	var out LeagueList
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(cfg.SyncLeagues) == 0 {
		cfg.SyncLeagues = slices.Clone(catalog.PopularLeagues)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.TelegramBotToken) == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	c.RunMode = strings.ToLower(strings.TrimSpace(c.RunMode))
	if c.RunMode != RunModePolling && c.RunMode != RunModeWebhook {
		return fmt.Errorf("RUN_MODE must be %q or %q, got %q", RunModePolling, RunModeWebhook, c.RunMode)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", c.UpstreamTimeout)
	}
	if c.SyncInterval < 0 {
		return fmt.Errorf("SYNC_INTERVAL cannot be negative, got %s", c.SyncInterval)
	}
	return nil
}

// IsUserAllowed checks whether a user ID is in the allow list.
// Returns true if the allow list is empty (all users permitted).
func (c *Config) IsUserAllowed(userID int64) bool {
	if len(c.AllowedUsers) == 0 {
		return true
	}
	return slices.Contains(c.AllowedUsers, userID)
}

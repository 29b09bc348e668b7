package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"football_bot/internal/catalog"
)

var envKeys = []string{
	"TELEGRAM_BOT_TOKEN", "DATABASE_PATH", "LOG_LEVEL", "HTTP_ADDR", "RUN_MODE",
	"WEBAPP_URL", "WEBHOOK_URL", "CATALOG_BASE_URL", "CACHE_TTL", "UPSTREAM_TIMEOUT",
	"SYNC_INTERVAL", "SYNC_LEAGUES", "ALLOWED_USERS",
}

// clearEnv unsets every key for the duration of the test; an empty value would
// count as set and suppress defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func defaults(token string) *Config {
	return &Config{
		TelegramBotToken: token,
		DatabasePath:     "./data/bot.db",
		LogLevel:         "info",
		HTTPAddr:         ":8080",
		RunMode:          RunModePolling,
		CatalogBaseURL:   "https://www.thesportsdb.com/api/v1/json/3",
		CacheTTL:         30 * time.Minute,
		UpstreamTimeout:  5 * time.Second,
		SyncLeagues:      LeagueList(catalog.PopularLeagues),
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    func() *Config
		wantErr bool
	}{
		{
			name:    "missing token",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name: "token only, defaults applied",
			env:  map[string]string{"TELEGRAM_BOT_TOKEN": "test-token"},
			want: func() *Config { return defaults("test-token") },
		},
		{
			name: "all values set",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "tok",
				"DATABASE_PATH":      "/tmp/bot.db",
				"LOG_LEVEL":          "debug",
				"HTTP_ADDR":          "127.0.0.1:9000",
				"RUN_MODE":           "Webhook",
				"WEBAPP_URL":         "https://app.test",
				"WEBHOOK_URL":        "https://bot.test/webhook",
				"CATALOG_BASE_URL":   "https://catalog.test/v1",
				"CACHE_TTL":          "10m",
				"UPSTREAM_TIMEOUT":   "2s",
				"SYNC_INTERVAL":      "6h",
				"SYNC_LEAGUES":       "Turkish Super League, English Premier League",
				"ALLOWED_USERS":      "111,222,333",
			},
			want: func() *Config {
				return &Config{
					TelegramBotToken: "tok",
					DatabasePath:     "/tmp/bot.db",
					LogLevel:         "debug",
					HTTPAddr:         "127.0.0.1:9000",
					RunMode:          RunModeWebhook,
					WebAppURL:        "https://app.test",
					WebhookURL:       "https://bot.test/webhook",
					CatalogBaseURL:   "https://catalog.test/v1",
					CacheTTL:         10 * time.Minute,
					UpstreamTimeout:  2 * time.Second,
					SyncInterval:     6 * time.Hour,
					SyncLeagues:      LeagueList{"Turkish Super League", "English Premier League"},
					AllowedUsers:     IDList{111, 222, 333},
				}
			},
		},
		{
			name: "allowed users with spaces",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "tok",
				"ALLOWED_USERS":      " 10 , 20 , ",
			},
			want: func() *Config {
				c := defaults("tok")
				c.AllowedUsers = IDList{10, 20}
				return c
			},
		},
		{
			name: "invalid user id",
			env: map[string]string{
				"TELEGRAM_BOT_TOKEN": "tok",
				"ALLOWED_USERS":      "123,abc",
			},
			wantErr: true,
		},
		{
			name:    "invalid run mode",
			env:     map[string]string{"TELEGRAM_BOT_TOKEN": "tok", "RUN_MODE": "serverless"},
			wantErr: true,
		},
		{
			name:    "zero cache ttl",
			env:     map[string]string{"TELEGRAM_BOT_TOKEN": "tok", "CACHE_TTL": "0s"},
			wantErr: true,
		},
		{
			name:    "negative upstream timeout",
			env:     map[string]string{"TELEGRAM_BOT_TOKEN": "tok", "UPSTREAM_TIMEOUT": "-1s"},
			wantErr: true,
		},
		{
			name:    "unparsable duration",
			env:     map[string]string{"TELEGRAM_BOT_TOKEN": "tok", "SYNC_INTERVAL": "often"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want(), got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsUserAllowed(t *testing.T) {
	tests := []struct {
		name         string
		allowedUsers IDList
		userID       int64
		want         bool
	}{
		{
			name:         "empty list allows everyone",
			allowedUsers: nil,
			userID:       42,
			want:         true,
		},
		{
			name:         "user in list",
			allowedUsers: IDList{10, 20, 30},
			userID:       20,
			want:         true,
		},
		{
			name:         "user not in list",
			allowedUsers: IDList{10, 20, 30},
			userID:       99,
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AllowedUsers: tt.allowedUsers}
			got := cfg.IsUserAllowed(tt.userID)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("IsUserAllowed() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadStore(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want *StoreConfig
	}{
		{
			name: "defaults without token",
			env:  map[string]string{},
			want: &StoreConfig{DatabasePath: "./data/bot.db", CatalogBaseURL: "https://www.thesportsdb.com/api/v1/json/3"},
		},
		{
			name: "overrides",
			env:  map[string]string{"DATABASE_PATH": "/var/lib/bot.db", "CATALOG_BASE_URL": "https://catalog.test/v1"},
			want: &StoreConfig{DatabasePath: "/var/lib/bot.db", CatalogBaseURL: "https://catalog.test/v1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := LoadStore()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LoadStore() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

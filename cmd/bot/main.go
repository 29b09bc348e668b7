package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"football_bot/internal/api"
	"football_bot/internal/bot"
	"football_bot/internal/cache"
	"football_bot/internal/catalog"
	"football_bot/internal/config"
	"football_bot/internal/logger"
	"football_bot/internal/repository"
	"football_bot/internal/scheduler"
	"football_bot/internal/service"
	"football_bot/internal/storage"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	store, err := storage.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	userRepo := repository.NewUserRepository(store)
	followRepo := repository.NewFollowRepository(store)
	catalogRepo := repository.NewCatalogRepository(store)

	teamCache := cache.New(catalogRepo, cfg.CacheTTL, cache.WithLogger(log))
	client := catalog.New(&http.Client{}, cfg.CatalogBaseURL, cfg.UpstreamTimeout)

	users := service.NewUserService(userRepo, followRepo)
	follows := service.NewFollowService(followRepo)
	teams := service.NewTeamService(teamCache, catalog.NewLenient(client, log)).WithTimeout(cfg.UpstreamTimeout)
	catalogSvc := service.NewCatalogService(catalogRepo, client, teamCache)

	b, err := bot.New(cfg.TelegramBotToken, bot.Services{Users: users, Follows: follows, Teams: teams}, cfg, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	health, err := api.NewHealthChecker(version, api.StoreCheck(store))
	if err != nil {
		log.Error("create health checker", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	api.NewHandler(log).
		WithHealthChecker(health).
		WithTeamService(teams).
		WithFollowService(follows).
		WithUserService(users).
		WithCatalogService(catalogSvc, cfg.SyncLeagues).
		WithUpdateHandler(b).
		RegisterRoutes(e)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		log.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", "error", err)
			cancel()
		}
	}()

	go scheduler.New(catalogSvc, cfg.SyncLeagues, cfg.SyncInterval, log).Run(ctx)

	log.Info("starting bot", "mode", cfg.RunMode, "version", version)

	switch cfg.RunMode {
	case config.RunModeWebhook:
		if cfg.WebhookURL != "" {
			if err := b.RegisterWebhook(cfg.WebhookURL); err != nil {
				log.Error("register webhook", "url", cfg.WebhookURL, "error", err)
			}
		}
		<-ctx.Done()
	default:
		b.Run(ctx)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown http server", "error", err)
	}

	log.Info("bot stopped")
}

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/capstock/capstock/internal/api"
	"github.com/capstock/capstock/internal/config"
	"github.com/capstock/capstock/internal/domain/imports"
	"github.com/capstock/capstock/internal/domain/items"
	"github.com/capstock/capstock/internal/importer"
	"github.com/capstock/capstock/internal/infra/db"
	httpx "github.com/capstock/capstock/internal/infra/http"
	"github.com/capstock/capstock/internal/infra/logger"
	"github.com/capstock/capstock/internal/infra/notify"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	itemsRepo := items.NewRepo(pool)
	batchesRepo := imports.NewRepo(pool)

	var notifier notify.Notifier = notify.Noop{}
	if cfg.Telegram.Enabled {
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.AdminChatID, log)
		if err != nil {
			log.Error("telegram init failed", "err", err)
			return
		}
		notifier = tg
		log.Info("telegram notifications enabled")
	}

	mapper := importer.NewMapper(importer.DefaultAliases())
	importSvc := importer.NewService(log, mapper, itemsRepo, batchesRepo, notifier)

	handler := api.NewHandler(log, itemsRepo, batchesRepo, importSvc, notifier, cfg.Stock.DefaultThreshold)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, handler.Routes())
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}

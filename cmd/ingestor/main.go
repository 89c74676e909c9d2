package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"dune_tours/internal/adapters/catalogfeed"
	"dune_tours/internal/adapters/observability"
	redisad "dune_tours/internal/adapters/redis"
	"dune_tours/internal/app"
	"dune_tours/internal/shared"
	mysqlrepo "dune_tours/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("base", cfg.CatalogBase).
		Int("workers", cfg.Workers).
		Int("rps", cfg.CatalogRPS).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	client, err := catalogfeed.New(cfg.CatalogBase, cfg.CatalogKey, cfg.CatalogRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog feed client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()

	cmd := app.NewCommandService(client, mysqlrepo.New(db), cache)
	rep, err := cmd.ImportAll(ctx, cfg.Workers)
	ev := log.Info()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.Int("listed", rep.Listed).
		Int("imported", rep.Imported).
		Int("missed", rep.Missed).
		Int("invalid", rep.Invalid).
		Int("failed", rep.Failed).
		Msg("ingestion completed")
}

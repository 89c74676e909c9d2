package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "dune_tours/internal/adapters/http_server"
	"dune_tours/internal/adapters/observability"
	redisad "dune_tours/internal/adapters/redis"
	"dune_tours/internal/app"
	"dune_tours/internal/chat"
	"dune_tours/internal/domain"
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

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	if cfg.MetricsAddr != "" {
		observability.Serve(cfg.MetricsAddr, reg)
	}

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		// cache-aside: the API still serves from MySQL
		log.Warn().Err(err).Msg("redis ping failed")
	}

	// deps
	repo := mysqlrepo.New(db)
	render := app.NewRenderer(func(id, field string, res domain.Resolution) {
		log.Debug().Str("id", id).Str("field", field).Str("resolution", res.String()).Msg("fallback")
		observability.ObserveFallback(field, res.String())
	})
	catalog := app.NewCatalogService(repo, cache, cfg.CacheTTL, render)
	commands := app.NewCommandService(nil, repo, cache)
	hub := chat.NewHub(cfg.ChatReplyDelay, cfg.ChatMaxSessions, cfg.ChatSessionTTL)

	// http
	srv := server.New()
	if cfg.MetricsAddr == "" {
		srv.Mount("/metrics", observability.MetricsHandler(reg))
	}
	srv.MountHandlers(&server.Handlers{
		Catalog:  catalog,
		Commands: commands,
		Chat:     hub,
		Map: server.MapSettings{
			Lat:         cfg.Map.Lat,
			Lon:         cfg.Map.Lon,
			Zoom:        cfg.Map.Zoom,
			Label:       cfg.Map.Label,
			TileURL:     cfg.Map.TileURL,
			Attribution: cfg.Map.Attribution,
		},
		AdminToken: cfg.AdminToken,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	hub.Close()
}

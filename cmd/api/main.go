package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_policy/internal/adapters/catalog"
	server "hotel_policy/internal/adapters/http_server"
	"hotel_policy/internal/adapters/observability"
	redisad "hotel_policy/internal/adapters/redis"
	"hotel_policy/internal/app"
	"hotel_policy/internal/shared"
	mysqlrepo "hotel_policy/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	amenityCatalog, err := catalog.New(cfg.CatalogBase, cfg.CatalogKey, 10)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog client")
	}

	resolver := app.NewPolicyResolver(repo)
	payments := app.NewPaymentMethodService(repo, resolver, cache, cfg.CacheTTL, cfg.Workers)
	cxl := app.NewCancellationPolicyService(repo, resolver, cache, cfg.CacheTTL)
	amenities := app.NewAmenityService(repo, app.NewExtrasResolver(repo), amenityCatalog)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Payments: payments, CxlPolicy: cxl, Amenities: amenities})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal feature
// packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assethandler "assetoracle/internal/asset/handler"
	assetservice "assetoracle/internal/asset/service"
	assetstore "assetoracle/internal/asset/store"
	"assetoracle/internal/audit"
	jwttoken "assetoracle/internal/jwt_token"
	"assetoracle/internal/platform/config"
	"assetoracle/internal/platform/httpserver"
	"assetoracle/internal/platform/logger"
	"assetoracle/internal/platform/metrics"
	"assetoracle/internal/platform/middleware"
	platformredis "assetoracle/internal/platform/redis"
	"assetoracle/internal/property"
	"assetoracle/internal/quorum"
	"assetoracle/internal/scoring"
	"assetoracle/internal/verification"
	verificationhandler "assetoracle/internal/verification/handler"
	runstore "assetoracle/internal/verification/store"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	// Asset persistence: postgres when configured, memory otherwise.
	var assets assetstore.Store = assetstore.NewInMemoryStore()
	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			log.Error("open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if _, err := db.Exec(assetstore.Schema); err != nil {
			log.Error("apply schema", "error", err)
			os.Exit(1)
		}
		assets = assetstore.NewPostgresStore(db)
		log.Info("asset store ready", "backend", "postgres")
	} else {
		log.Warn("no postgres configured, using in-memory asset store")
	}

	// Run status cache: redis when configured, memory otherwise.
	var runs verification.RunStore = runstore.NewInMemoryStore()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		runs = runstore.NewRedisStore(redisClient.Client, 24*time.Hour)
		log.Info("run store ready", "backend", "redis")
	}

	// Audit trail with optional Kafka fan-out of the chain-submission payload.
	auditOpts := []audit.Option{audit.WithLogger(log)}
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("create kafka sink", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		auditOpts = append(auditOpts, audit.WithSink(sink))
		log.Info("audit kafka sink ready", "topic", cfg.Kafka.Topic)
	}
	auditor := audit.NewPublisher(audit.NewInMemoryStore(), auditOpts...)

	// Pipeline components.
	aggregator, err := property.NewAggregator(property.SourcesFromConfig(cfg.Sources),
		property.WithLogger(log), property.WithMetrics(m))
	if err != nil {
		log.Error("build aggregator", "error", err)
		os.Exit(1)
	}
	scorer := scoring.NewClient(cfg.Scoring, scoring.WithLogger(log), scoring.WithMetrics(m))
	sim, err := quorum.NewSimulator(cfg.Quorum, quorum.WithLogger(log), quorum.WithMetrics(m))
	if err != nil {
		log.Error("build quorum simulator", "error", err)
		os.Exit(1)
	}

	assetSvc := assetservice.New(assets,
		assetservice.WithLogger(log),
		assetservice.WithAuditPublisher(auditor),
		assetservice.WithMetrics(m))
	verificationSvc := verification.New(assets, runs, aggregator, scorer, sim,
		verification.WithLogger(log),
		verification.WithAuditPublisher(auditor),
		verification.WithMetrics(m))

	jwtService := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
	validator := jwttoken.NewJWTServiceAdapter(jwtService)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.Timeout(30 * time.Second))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	assethandler.New(assetSvc, log).Register(router, validator)
	verificationhandler.New(verificationSvc, log).Register(router, validator)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

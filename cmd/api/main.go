// API entrypoint: loads configuration, wires storage, services and the HTTP
// boundary, and runs the server until the process is told to stop.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pobimgroup/election-dashboard/internal/app/auth"
	"github.com/pobimgroup/election-dashboard/internal/app/batch"
	"github.com/pobimgroup/election-dashboard/internal/app/electionmgmt"
	"github.com/pobimgroup/election-dashboard/internal/app/httpapi"
	"github.com/pobimgroup/election-dashboard/internal/app/results"
	"github.com/pobimgroup/election-dashboard/internal/app/stream"
	"github.com/pobimgroup/election-dashboard/internal/app/voting"
	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/platform/clock"
	"github.com/pobimgroup/election-dashboard/internal/platform/config"
	"github.com/pobimgroup/election-dashboard/internal/platform/health"
	"github.com/pobimgroup/election-dashboard/internal/platform/identity"
	"github.com/pobimgroup/election-dashboard/internal/platform/ids"
	"github.com/pobimgroup/election-dashboard/internal/platform/logger"
	"github.com/pobimgroup/election-dashboard/internal/platform/migrations"
	"github.com/pobimgroup/election-dashboard/internal/platform/ratelimit"
	postgresstorage "github.com/pobimgroup/election-dashboard/internal/platform/storage/postgres"
	redisstorage "github.com/pobimgroup/election-dashboard/internal/platform/storage/redis"
	"github.com/pobimgroup/election-dashboard/internal/platform/token"
	"github.com/pobimgroup/election-dashboard/internal/platform/voterhash"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	// One shared connection pool for repositories and readiness checks.
	db, err := postgresstorage.Open(ctx, cfg.PostgresDSN())
	if err != nil {
		logger.Fatal("postgres connection failed", "err", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("sql.DB unwrap failed", "err", err)
	}
	defer sqlDB.Close()

	if cfg.AutoMigrate {
		if err := migrations.Run(db); err != nil {
			logger.Fatal("automatic migration failed", "err", err)
		}
	}

	// Redis backs the live cast counter and the rate limiter.
	redisClient, err := redisstorage.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("redis connection failed", "err", err)
	}
	defer redisClient.Close()

	elections := postgresstorage.NewElectionRepository(db)
	parties := postgresstorage.NewPartyRepository(db)
	candidates := postgresstorage.NewCandidateRepository(db)
	questions := postgresstorage.NewQuestionRepository(db)
	votes := postgresstorage.NewVoteRepository(db)
	batches := postgresstorage.NewBatchRepository(db)
	geo := postgresstorage.NewGeoRepository(db)
	users := postgresstorage.NewUserRepository(db)
	counter := redisstorage.NewCounter(redisClient, cfg.CounterKeyPrefix)
	systemClock := clock.NewSystemClock()
	idGen := ids.NewGenerator()

	var limiter domain.RateLimiter = ratelimit.NewNoop()
	if cfg.RateLimitEnabled {
		window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
		limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimitMaxActions, window, cfg.RateLimitKeyPrefix)
	}

	issuer := token.NewIssuer(cfg.JWTSecret, 24*time.Hour)
	hasher := voterhash.New(cfg.VoteSalt)

	resultsSvc := results.NewService(elections, parties, candidates, questions, votes, geo, systemClock)
	hub := stream.NewHub(resultsSvc)
	votingSvc := voting.NewService(
		elections,
		parties,
		candidates,
		questions,
		votes,
		counter,
		limiter,
		hub,
		hasher,
		systemClock,
		idGen,
	)
	batchSvc := batch.NewService(batches, elections, geo, idGen)
	mgmtSvc := electionmgmt.NewService(elections, parties, candidates, questions, geo, idGen)
	authSvc := auth.NewService(users, identity.NewMockVerifier(), issuer, systemClock, idGen)

	mux := http.NewServeMux()
	api := httpapi.New(httpapi.Options{
		Auth:      authSvc,
		Mgmt:      mgmtSvc,
		Voting:    votingSvc,
		Batches:   batchSvc,
		Results:   resultsSvc,
		Hub:       hub,
		Geo:       geo,
		Counter:   counter,
		Issuer:    issuer,
		Logger:    logger.L(),
		Heartbeat: time.Duration(cfg.HeartbeatSecs) * time.Second,
	})
	api.Register(mux)

	checker := health.NewChecker(sqlDB, redisClient)
	mux.HandleFunc("/readyz", checker.ReadyHandler())
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    cfg.HTTPAddress,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "err", err)
		}
	}()

	logger.Info("api listening", "addr", cfg.HTTPAddress)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", "err", err)
	}
	logger.Info("api stopped")
}

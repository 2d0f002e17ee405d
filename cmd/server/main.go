// backend-go/cmd/server/main.go
package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/storebrain/backend-go/internal/api"
	"github.com/andresuchdata/storebrain/backend-go/internal/cache"
	"github.com/andresuchdata/storebrain/backend-go/internal/config"
	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/andresuchdata/storebrain/backend-go/internal/report"
	"github.com/andresuchdata/storebrain/backend-go/internal/repository"
	"github.com/andresuchdata/storebrain/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/storebrain/backend-go/internal/service"
	"github.com/andresuchdata/storebrain/backend-go/internal/simulation"
	"github.com/andresuchdata/storebrain/backend-go/internal/storage"
	"github.com/andresuchdata/storebrain/backend-go/internal/store"
	"github.com/andresuchdata/storebrain/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.SetLevel(cfg.Server.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ledger, err := simulation.NewLedger(cfg.Catalogue, cfg.Simulation, logger.Component("ledger"))
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to build store")
	}
	live := store.NewSyncLedger(ledger)

	var repo repository.ReportRepository
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		repo = postgres.NewReportRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to prepare report schema")
		}
	}

	snapshotCache, err := cache.NewSnapshotCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Snapshot cache unavailable, continuing without it")
		snapshotCache = cache.NewNoopSnapshotCache()
	}
	reportService := service.NewReportService(repo, snapshotCache)

	sinks := []report.Sink{report.NewLogSink(logger.Component("simulation"))}
	if cfg.Database.Enabled || cfg.Cache.Enabled {
		sinks = append(sinks, reportService)
	}

	opts, err := simulation.OptionsFromConfig(cfg.Simulation)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Invalid simulation settings")
	}
	// The live store runs until it is told to stop; reporting outages do not
	// stop it.
	opts.Days = 0
	opts.TolerateSinkErrors = true

	rng := rand.New(rand.NewSource(cfg.Simulation.Seed))
	runner, err := simulation.NewRunner(live, report.NewFanout(sinks...), opts, rng, logger.Component("simulation"))
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to create simulation")
	}

	router := api.NewRouter(&api.Services{
		Store:         live,
		ReportService: reportService,
	}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Log.Info().Str("run_id", runner.RunID()).Str("mode", string(opts.Mode)).Msg("Starting live simulation")
		_, err := runner.Run(gctx)
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Log.Error().Err(err).Msg("Server stopped with error")
	}

	snap := live.Snapshot()
	logger.Log.Info().
		Interface("on_hand", snap.OnHand).
		Interface("price", snap.Price).
		Float64("revenue", snap.Revenue).
		Float64("expenses", snap.Expenses).
		Float64("profit", snap.Profit).
		Float64("inventory_value", snap.InventoryValue).
		Msg("Final store snapshot")

	if cfg.Storage.Enabled {
		archiveOrders(cfg.Storage, runner.RunID(), live.Orders())
	}

	logger.Log.Info().Msg("Server exiting")
}

func archiveOrders(cfg config.StorageConfig, runID string, orders []domain.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := storage.NewMinioClient(ctx, cfg)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Object storage unavailable, orders not archived")
		return
	}
	key, err := report.ArchiveOrders(ctx, client, runID, orders)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to archive orders")
		return
	}
	logger.Log.Info().Str("key", key).Int("orders", len(orders)).Msg("Archived orders")
}

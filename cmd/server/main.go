package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifeboard/internal/config"
	"github.com/lifeboard/internal/database"
	"github.com/lifeboard/internal/events"
	"github.com/lifeboard/internal/modules/streaks"
	"github.com/lifeboard/internal/modules/tracking"
	"github.com/lifeboard/internal/modules/trend"
	"github.com/lifeboard/internal/scheduler"
	"github.com/lifeboard/internal/server"
	"github.com/lifeboard/pkg/logger"
)

func main() {
	// Load configuration first so the logger honors LOG_LEVEL
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Lifeboard")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	eventManager := events.NewManager(log)

	// Initialize scheduler
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	if err := registerJobs(sched, db, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:   cfg.Port,
		Log:    log,
		DB:     db,
		Config: cfg,
		Events: eventManager,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func registerJobs(sched *scheduler.Scheduler, db *database.DB, cfg *config.Config, log zerolog.Logger) error {
	conn := db.Conn()

	summary := scheduler.NewDailySummaryJob(
		tracking.NewWeightRepository(conn, log),
		streaks.NewRepository(conn, log),
		trend.NewService(log),
		cfg.StreakLookback,
		log,
	)

	// Every morning at 06:00
	if err := sched.AddJob("0 0 6 * * *", summary); err != nil {
		return err
	}

	// Every 6 hours
	return sched.AddJob("0 0 */6 * * *", scheduler.NewHealthCheckJob(db, log))
}

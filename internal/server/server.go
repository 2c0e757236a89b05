package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/lifeboard/internal/config"
	"github.com/lifeboard/internal/database"
	"github.com/lifeboard/internal/events"
	"github.com/lifeboard/internal/modules/projection"
	"github.com/lifeboard/internal/modules/streaks"
	"github.com/lifeboard/internal/modules/tracking"
	"github.com/lifeboard/internal/modules/trend"
)

// Config holds server configuration
type Config struct {
	Port   int
	Log    zerolog.Logger
	DB     *database.DB
	Config *config.Config
	Events *events.Manager
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	db     *database.DB
	cfg    *config.Config

	tracking   *tracking.Handler
	projection *projection.Handler
	streaks    *streaks.Handler
	trend      *trend.Handler
}

// New creates a new HTTP server with all module handlers wired up
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		db:     cfg.DB,
		cfg:    cfg.Config,
	}

	conn := cfg.DB.Conn()
	weightRepo := tracking.NewWeightRepository(conn, cfg.Log)
	calorieRepo := tracking.NewCalorieRepository(conn, cfg.Log)
	profileRepo := tracking.NewProfileRepository(conn, cfg.Log)
	habitRepo := streaks.NewRepository(conn, cfg.Log)

	s.tracking = tracking.NewHandler(weightRepo, calorieRepo, profileRepo, cfg.Events, cfg.Log)
	s.projection = projection.NewHandler(
		weightRepo, calorieRepo, profileRepo,
		projection.NewService(cfg.Log),
		cfg.Config.DefaultAdherence,
		cfg.Log,
	)
	s.streaks = streaks.NewHandler(habitRepo, cfg.Events, cfg.Config.StreakLookback, cfg.Log)
	s.trend = trend.NewHandler(weightRepo, trend.NewService(cfg.Log), cfg.Log)

	s.setupMiddleware(cfg.Config.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
		})

		r.Route("/weights", func(r chi.Router) {
			r.Get("/", s.tracking.HandleListWeights)
			r.Post("/", s.tracking.HandleCreateWeight)
			r.Delete("/{id}", s.tracking.HandleDeleteWeight)
		})

		r.Route("/calories", func(r chi.Router) {
			r.Get("/", s.tracking.HandleListCalories)
			r.Post("/", s.tracking.HandleCreateCalorie)
			r.Delete("/{id}", s.tracking.HandleDeleteCalorie)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", s.tracking.HandleGetProfile)
			r.Put("/", s.tracking.HandlePutProfile)
		})

		r.Get("/projection", s.projection.HandleGetProjection)

		r.Route("/goal", func(r chi.Router) {
			r.Get("/eta", s.projection.HandleGetGoalETA)
			r.Get("/trajectory", s.projection.HandleGetTargetTrajectory)
			r.Get("/progress", s.projection.HandleGetProgress)
		})

		r.Route("/streak", func(r chi.Router) {
			r.Get("/", s.streaks.HandleGetStreak)
			r.Post("/log", s.streaks.HandleLogHabit)
		})

		r.Get("/trend", s.trend.HandleGetTrend)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

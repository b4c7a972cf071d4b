package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-booking/internal/artist"
	artist_api "ms-booking/internal/artist/api"
	artistdb "ms-booking/internal/artist/db"
	"ms-booking/internal/auth"
	"ms-booking/internal/cache"
	"ms-booking/internal/config"
	"ms-booking/internal/database/migrations"
	"ms-booking/internal/kafka"
	"ms-booking/internal/logger"
	"ms-booking/internal/show"
	show_api "ms-booking/internal/show/api"
	showdb "ms-booking/internal/show/db"
	"ms-booking/internal/venue"
	venue_api "ms-booking/internal/venue/api"
	venuedb "ms-booking/internal/venue/db"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	appLogger := logger.NewLogger()
	defer appLogger.Close()

	// --- PostgreSQL Setup ---
	sqldb, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		appLogger.Fatal("DATABASE", fmt.Sprintf("❌ Failed to open Postgres connection: %v", err))
	}
	defer sqldb.Close()

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := sqldb.Ping(); err != nil {
		appLogger.Fatal("DATABASE", fmt.Sprintf("❌ Failed to connect to Postgres: %v", err))
	}

	bunDB := bun.NewDB(sqldb, pgdialect.New())

	// Run migrations
	runner := migrations.NewRunner(bunDB, migrations.DefaultOptions())
	if err := runner.RunMigrations(); err != nil {
		appLogger.Fatal("DATABASE", fmt.Sprintf("❌ Migrations failed: %v", err))
	}

	// --- Redis Setup ---
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	appLogger.Info("REDIS", "🔗 Connecting to Redis...")

	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Fatal("REDIS", fmt.Sprintf("❌ Failed to connect to Redis: %v", err))
	}

	// --- Kafka Setup ---
	topics := []string{
		cfg.Kafka.Topics.VenueEvents,
		cfg.Kafka.Topics.ArtistEvents,
		cfg.Kafka.Topics.ShowEvents,
	}
	if cfg.Kafka.Enabled && !cfg.Kafka.MockMode {
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, topics); err != nil {
			appLogger.Warn("KAFKA", fmt.Sprintf("Topic bootstrap failed: %v", err))
		}
	}
	producer := kafka.NewProducer(cfg.Kafka.Brokers, topics, cfg.Kafka.Enabled, cfg.Kafka.MockMode, appLogger)
	defer producer.Close()

	// --- Initialize Dependencies ---
	appLogger.Info("BOOT", "📦 Initializing directory services...")
	jsonCache := cache.New(redisClient, cfg.Redis.CacheTTL, appLogger)

	venueService := venue.NewService(&venuedb.DB{Bun: bunDB}, jsonCache, producer, cfg.Kafka.Topics.VenueEvents, appLogger)
	artistService := artist.NewService(&artistdb.DB{Bun: bunDB}, jsonCache, producer, cfg.Kafka.Topics.ArtistEvents, appLogger)
	showService := show.NewService(&showdb.DB{Bun: bunDB}, jsonCache, producer, cfg.Kafka.Topics.ShowEvents, appLogger)

	venueHandler := &venue_api.Handler{VenueService: venueService}
	artistHandler := &artist_api.Handler{ArtistService: artistService}
	showHandler := &show_api.Handler{ShowService: showService}

	// --- Setup Router ---
	r := chi.NewRouter()
	r.Use(requestLogger(appLogger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// public read routes
		r.Get("/venues", venueHandler.ListVenues)
		r.Post("/venues/search", venueHandler.SearchVenues)
		r.Get("/venues/{venueID}", venueHandler.GetVenue)
		r.Get("/artists", artistHandler.ListArtists)
		r.Post("/artists/search", artistHandler.SearchArtists)
		r.Get("/artists/{artistID}", artistHandler.GetArtist)
		r.Get("/shows", showHandler.ListShows)

		// mutating routes require a bearer token
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(cfg.Auth.JWTSecret))
			r.Post("/venues", venueHandler.CreateVenue)
			r.Put("/venues/{venueID}", venueHandler.UpdateVenue)
			r.Delete("/venues/{venueID}", venueHandler.DeleteVenue)
			r.Post("/artists", artistHandler.CreateArtist)
			r.Put("/artists/{artistID}", artistHandler.UpdateArtist)
			r.Post("/shows", showHandler.CreateShow)
		})
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("BOOT", fmt.Sprintf("🚀 Booking directory running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("BOOT", fmt.Sprintf("❌ HTTP server error: %v", err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("BOOT", "📦 Shutdown signal received. Cleaning up...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		appLogger.Fatal("BOOT", fmt.Sprintf("❌ Server forced to shutdown: %v", err))
	}

	appLogger.Info("BOOT", "✅ Server exited gracefully")
}

// requestLogger tags every request with an id and logs method, path,
// status and duration.
func requestLogger(appLogger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.New().String()
			w.Header().Set("X-Request-ID", requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			appLogger.LogAPI(r.Method, r.URL.Path,
				fmt.Sprintf("%d [%s]", rec.status, requestID[:8]),
				time.Since(start).String())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

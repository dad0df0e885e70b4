package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrewpaige1/learning-tracker/ai"
	"github.com/andrewpaige1/learning-tracker/auth"
	"github.com/andrewpaige1/learning-tracker/config"
	"github.com/andrewpaige1/learning-tracker/handlers"
	"github.com/andrewpaige1/learning-tracker/logging"
	"github.com/andrewpaige1/learning-tracker/middleware"
	"github.com/andrewpaige1/learning-tracker/web"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" && os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Warn().Err(err).Msg(".env file not found, environment variables might not be loaded")
		}
	}
}

func main() {
	env, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{Level: env.LogLevel, Format: env.LogFormat})

	db, err := config.Connect(env.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sessions, err := auth.NewSessions(auth.SessionOptions{
		Secret: env.JWTSecretKey,
		MaxAge: env.SessionMaxAge,
		Domain: env.Domain,
		Secure: env.CookieSecure,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up sessions")
	}

	if env.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, flashcard generation will fail")
	}
	generator := ai.NewGenerator(ai.NewGemini(ai.GeminiOptions{
		APIKey:  env.GeminiAPIKey,
		BaseURL: env.GeminiBaseURL,
		Model:   env.GeminiModel,
	}))

	DBHandler := handlers.NewDBHandler(db, sessions, generator)
	if env.GoogleEnabled() {
		DBHandler.Google = auth.NewGoogle(env.GoogleClientID, env.GoogleClientSecret, env.BaseURL)
	}

	pages, err := web.New(sessions, env.GoogleEnabled())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load page templates")
	}

	mux := http.NewServeMux()
	DBHandler.Routes(mux, middleware.RateLimitByIP(10, time.Minute))
	pages.Routes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = middleware.Metrics(mux)
	handler = middleware.DashboardGuard(sessions)(handler)
	handler = middleware.Authenticate(sessions)(handler)

	if env.Auth0Enabled() {
		ensureValidToken, err := middleware.EnsureValidToken(env.Auth0Domain, env.Auth0Audience)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up auth0 validation")
		}
		handler = ensureValidToken(middleware.SyncUser(db)(handler))
	}

	handler = middleware.RequestLogger(handler)

	// Configure CORS with specific options
	handler = cors.New(cors.Options{
		AllowedOrigins:   env.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(handler)

	server := &http.Server{
		Addr:              "0.0.0.0:" + env.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// generation requests wait on the model
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("env", env.AppEnv).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// @title Photo Booth Events API
// @version 1.0
// @description Event creation and management for the photo booth service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin token.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"photobooth/config"
	_ "photobooth/docs"
	"photobooth/internal/adapters/auth"
	deliveryhttp "photobooth/internal/delivery/http"
	"photobooth/internal/delivery/http/controllers"
	"photobooth/internal/delivery/http/middleware"
	"photobooth/internal/repository/postgres"
	"photobooth/internal/services"
)

func main() {
	issueFor := flag.String("issue-token", "", "print an admin bearer token for this email and exit")
	flag.Parse()

	logger := config.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}
	tokens := auth.NewJWT(cfg.JWTSecret, cfg.TokenExpiry)

	if *issueFor != "" {
		token, err := tokens.Issue(*issueFor)
		if err != nil {
			logger.Error("token issue failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	// Connect to PostgreSQL
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.PingContext(ctx); err != nil {
		logger.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	if err := postgres.CreateSchema(ctx, db); err != nil {
		logger.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database schema ready")

	eventService := services.NewEventService(
		postgres.NewEventRepository(db),
		postgres.NewPhotoRepository(db),
		postgres.NewAdminRepository(db),
		logger,
		cfg.ContextTimeout,
	)

	limiter := middleware.NewRateLimiter(middleware.LimiterConfig{
		RPS:     cfg.TitleCheckRPS,
		Burst:   cfg.TitleCheckBurst,
		IdleTTL: 10 * time.Minute,
	}, logger)
	go limiter.Run(ctx)

	mux := deliveryhttp.NewRouter(
		controllers.NewEventController(logger, eventService),
		middleware.RequireAuth(tokens, eventService, logger),
		limiter.Limit,
	)
	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server closed", "error", err)
		os.Exit(1)
	}
	logger.Info("server closed")
}

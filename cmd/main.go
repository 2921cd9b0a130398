package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/suzanemu/pubg-point-bot/config"
	"github.com/suzanemu/pubg-point-bot/db"
	"github.com/suzanemu/pubg-point-bot/handlers"
	"github.com/suzanemu/pubg-point-bot/live"
	"github.com/suzanemu/pubg-point-bot/repositories"
	api "github.com/suzanemu/pubg-point-bot/routes"
	"github.com/suzanemu/pubg-point-bot/scoring"
	"github.com/suzanemu/pubg-point-bot/services"
	"github.com/suzanemu/pubg-point-bot/storage"
	"github.com/suzanemu/pubg-point-bot/vision"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	rules, err := scoring.NewRules(cfg.MaxPlacement)
	if err != nil {
		logger.Error("invalid scoring configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Инициализация загрузчика файлов (Cloudflare R2)
	cloudflareUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	// Клиент распознавания скриншотов
	analyzer, err := vision.NewGatewayAnalyzer(vision.GatewayAnalyzerConfig{
		BaseURL:      cfg.AIGatewayURL,
		APIKey:       cfg.AIGatewayKey,
		Model:        cfg.AIModel,
		MaxPlacement: cfg.MaxPlacement,
		Timeout:      cfg.AITimeout,
	})
	if err != nil {
		logger.Error("failed to initialize screenshot analyzer", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("screenshot analyzer initialized", slog.String("model", cfg.AIModel))

	// Инициализация WebSocket Hub для живой таблицы
	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	accessCodeRepo := repositories.NewPostgresAccessCodeRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchResultRepository(dbConn)
	logger.Info("repositories initialized")

	// Инициализация сервисов
	authService := services.NewAuthService(userRepo, accessCodeRepo, cfg.JWTSecretKey)
	tournamentService := services.NewTournamentService(tournamentRepo)
	teamService := services.NewTeamService(dbConn, teamRepo, accessCodeRepo, tournamentRepo)
	standingsService := services.NewStandingsService(teamRepo, matchRepo)
	resultService := services.NewResultService(
		teamRepo,
		tournamentRepo,
		matchRepo,
		cloudflareUploader,
		analyzer,
		scoring.NewValidator(rules),
		standingsService,
		wsHub,
		logger,
	)
	logger.Info("services initialized")

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	teamHandler := handlers.NewTeamHandler(teamService)
	resultHandler := handlers.NewResultHandler(resultService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	wsHandler := handlers.NewWSHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		[]byte(cfg.JWTSecretKey),
		authHandler,
		tournamentHandler,
		teamHandler,
		resultHandler,
		standingsHandler,
		wsHandler,
	)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

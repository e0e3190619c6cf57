package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gametale-ranker/internal/ranker/config"
	delivery "gametale-ranker/internal/ranker/delivery/http"
	"gametale-ranker/internal/ranker/repository"
	"gametale-ranker/internal/ranker/service"
	"gametale-ranker/pkg/logger"
	"gametale-ranker/pkg/postgres"
	"gametale-ranker/pkg/redis"
	"gametale-ranker/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the ranking API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Ranking API Service", logger.Field("name", cfg.App.Name))

	db, err := postgres.NewDB(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Error("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Repositories
	catalogRepo := repository.NewCatalogRepository(cfg, appLogger, redisClient)
	youtubeRepo := repository.NewYouTubeRepository(cfg, appLogger)
	overrideRepo := repository.NewGameOverrideRepository(db.DB)
	cacheRepo := repository.NewYouTubeCacheRepository(db.DB)
	publisherRepo := repository.NewPriorityPublisherRepository(db.DB, time.Hour)

	// Services
	signalSvc := service.NewYouTubeSignalService(cfg, appLogger, youtubeRepo)
	releaseSvc := service.NewReleaseService(appLogger, overrideRepo, signalSvc)
	rankingSvc := service.NewRankingService(cfg, appLogger, catalogRepo, overrideRepo, cacheRepo, publisherRepo, signalSvc, releaseSvc)
	top10Svc := service.NewTop10Service(cfg, appLogger, catalogRepo)
	refresher := service.NewTrendingRefresher(cfg, appLogger, redisClient, cacheRepo, rankingSvc, signalSvc, notifier)

	e := echo.New()
	e.HideBanner = true

	apiV1 := e.Group("/api/v1")

	rankingHandler := delivery.NewRankingHandler(rankingSvc, top10Svc, appLogger)
	rankingHandler.RegisterRoutes(apiV1.Group("/rankings"))

	gameHandler := delivery.NewGameHandler(catalogRepo, releaseSvc, appLogger)
	gameHandler.RegisterRoutes(apiV1.Group("/games"), apiV1)

	signalHandler := delivery.NewSignalHandler(cfg, signalSvc, refresher, appLogger)
	signalHandler.RegisterRoutes(apiV1.Group("/signals"))

	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}

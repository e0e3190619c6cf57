package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gametale-ranker/internal/ranker/config"
	"gametale-ranker/internal/ranker/repository"
	"gametale-ranker/internal/ranker/service"
	"gametale-ranker/pkg/logger"
	"gametale-ranker/pkg/postgres"
	"gametale-ranker/pkg/redis"
	"gametale-ranker/pkg/telegram"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

const defaultSchedule = "0 */6 * * *"

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the trending cache refresher",
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

	appLogger.Info("Starting Trending Refresher Service", logger.Field("name", cfg.App.Name))

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

	catalogRepo := repository.NewCatalogRepository(cfg, appLogger, redisClient)
	youtubeRepo := repository.NewYouTubeRepository(cfg, appLogger)
	overrideRepo := repository.NewGameOverrideRepository(db.DB)
	cacheRepo := repository.NewYouTubeCacheRepository(db.DB)
	publisherRepo := repository.NewPriorityPublisherRepository(db.DB, time.Hour)

	signalSvc := service.NewYouTubeSignalService(cfg, appLogger, youtubeRepo)
	releaseSvc := service.NewReleaseService(appLogger, overrideRepo, signalSvc)
	rankingSvc := service.NewRankingService(cfg, appLogger, catalogRepo, overrideRepo, cacheRepo, publisherRepo, signalSvc, releaseSvc)
	refresher := service.NewTrendingRefresher(cfg, appLogger, redisClient, cacheRepo, rankingSvc, signalSvc, notifier)

	schedule := cfg.Refresher.Schedule
	if schedule == "" {
		schedule = defaultSchedule
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		refresher.Refresh(ctx)
	}); err != nil {
		appLogger.Fatal("Invalid refresh schedule", logger.StringField("schedule", schedule), logger.ErrorField(err))
	}
	c.Start()
	appLogger.Info("Refresh schedule registered", logger.StringField("schedule", schedule))

	// Run once at startup so a fresh deployment has a warm cache.
	go refresher.Refresh(ctx)

	<-ctx.Done()

	appLogger.Info("Shutting down refresher...")
	<-c.Stop().Done()
	appLogger.Info("Refresher exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "refresher-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-refresher.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing refresher-service CLI: %s\n", err)
		os.Exit(1)
	}
}

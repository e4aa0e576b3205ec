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

	"golang-stock-scorer/internal/scorer/config"
	delivery "golang-stock-scorer/internal/scorer/delivery/http"
	_ "golang-stock-scorer/internal/scorer/docs"
	"golang-stock-scorer/internal/scorer/repository"
	"golang-stock-scorer/internal/scorer/service"
	"golang-stock-scorer/pkg/logger"
	"golang-stock-scorer/pkg/mlmodel"
	"golang-stock-scorer/pkg/postgres"
	"golang-stock-scorer/pkg/redis"
	"golang-stock-scorer/pkg/sentiment"
	"golang-stock-scorer/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the scorer service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Scorer Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Load the model artifact if one exists. A missing artifact is not an
	// error: scoring degrades to rule-only output.
	var model *mlmodel.Model
	if cfg.Scorer.ModelPath != "" {
		model, err = mlmodel.Load(cfg.Scorer.ModelPath)
		if err != nil {
			appLogger.Warn("Could not load ML model, scoring will be rule-only", logger.ErrorField(err))
			model = nil
		} else {
			appLogger.Info("ML model loaded", logger.StringField("path", cfg.Scorer.ModelPath))
		}
	}

	// Entity extraction is optional as well: without a Gemini API key the
	// detector runs with empty entity lists.
	var entityRepo repository.EntityRepository
	if cfg.Gemini.APIKey != "" {
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Warn("Failed to initialize Gemini client, entity extraction disabled", logger.ErrorField(err))
		} else {
			entityRepo, err = repository.NewGeminiEntityRepository(cfg, appLogger, genAiClient)
			if err != nil {
				appLogger.Warn("Failed to initialize entity repository, entity extraction disabled", logger.ErrorField(err))
			}
		}
	}

	var notifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Warn("Failed to initialize Telegram notifier, alerts disabled", logger.ErrorField(err))
			notifier = nil
		}
	}

	// Initialize repositories
	scoreStore := repository.NewScoreStore(db.DB)
	scoreRecordRepo := repository.NewScoreRecordRepository(db.DB)
	analyzer := sentiment.NewVaderAnalyzer()
	yahooRepo, err := repository.NewYahooFinanceRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Yahoo Finance repository", logger.ErrorField(err))
	}
	alphaRepo, err := repository.NewAlphaVantageRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Alpha Vantage repository", logger.ErrorField(err))
	}
	newsRepo, err := repository.NewNewsRepository(cfg, appLogger, analyzer)
	if err != nil {
		appLogger.Fatal("Failed to initialize news repository", logger.ErrorField(err))
	}

	// Initialize services
	aggregator := service.NewFeatureAggregator(yahooRepo, alphaRepo, newsRepo, appLogger)
	ruleScorer := service.NewRuleScorer()
	eventDetector := service.NewEventDetector(analyzer, entityRepo, appLogger)
	mlScorer := service.NewMLScorer(model)
	blender := service.NewScoreBlender()
	scoringSvc := service.NewScoringService(cfg, appLogger, aggregator, ruleScorer, eventDetector, mlScorer, blender, scoreStore, redisClient)
	trendSvc := service.NewTrendService(scoreRecordRepo)
	historySvc := service.NewHistoryService(scoreRecordRepo)
	refreshSvc := service.NewRefreshService(cfg, appLogger, scoringSvc, notifier)

	if err := refreshSvc.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start refresh scheduler", logger.ErrorField(err))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	scoreHandler := delivery.NewScoreHandler(scoringSvc, trendSvc, historySvc, appLogger)
	apiV1 := e.Group("/api/v1")
	scoreHandler.RegisterRoutes(apiV1)

	e.GET("/swagger/*", swagger.WrapHandler)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// Start server
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

	refreshSvc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Stock Scorer API
// @version 1.0
// @description Explainable 0-100 scoring for financial tickers.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "scorer-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-scorer.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing scorer-service CLI: %s\n", err)
		os.Exit(1)
	}
}

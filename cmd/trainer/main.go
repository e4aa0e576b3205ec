package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"golang-stock-scorer/internal/scorer/config"
	"golang-stock-scorer/internal/scorer/repository"
	"golang-stock-scorer/internal/scorer/service"
	"golang-stock-scorer/pkg/logger"
	"golang-stock-scorer/pkg/postgres"

	"github.com/spf13/cobra"
)

var configPath string

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fits a regression model from persisted snapshots and writes the model artifact",
	Run:   runTrain,
}

func runTrain(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

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

	snapshotRepo := repository.NewSnapshotRepository(db.DB)
	trainerSvc := service.NewTrainerService(cfg, appLogger, snapshotRepo)

	_, report, err := trainerSvc.Train(context.Background())
	if err != nil {
		if errors.Is(err, service.ErrInsufficientData) {
			appLogger.Error("Training aborted", logger.ErrorField(err))
		} else {
			appLogger.Error("Training failed", logger.ErrorField(err))
		}
		os.Exit(1)
	}

	appLogger.Info("Model artifact written",
		logger.StringField("path", cfg.Scorer.ModelPath),
		logger.IntField("rows", report.Rows),
		logger.Float64Field("r2", report.R2),
		logger.Float64Field("rmse", report.RMSE),
	)
}

func main() {
	rootCmd := &cobra.Command{Use: "trainer"}

	trainCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-scorer.yaml", "Path to the configuration file")

	rootCmd.AddCommand(trainCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing trainer CLI: %s\n", err)
		os.Exit(1)
	}
}

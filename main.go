package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"furniture-store/cmd"
	"furniture-store/internal/data/memstore"
	"furniture-store/internal/data/repository"
	"furniture-store/internal/wire"
	"furniture-store/pkg/database"
	"furniture-store/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("storage", config.App.Storage),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repos *repository.Repository
	switch config.App.Storage {
	case utils.StorageMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		repos = memstore.NewRepository()
	default:
		if config.Database.Migrate {
			if err := database.Migrate(config.Database); err != nil {
				logger.Fatal("Failed to run migrations", zap.Error(err))
			}
			logger.Info("Database migrations applied")
		}

		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connected successfully")
		repos = repository.NewRepository(db, logger)
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)
	app.StartWorkers(ctx)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}

	app.Service.Contact.Wait()
	logger.Info("Server stopped")
}

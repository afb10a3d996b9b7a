package main

import (
	"context"
	"log"
	"time"

	"floor-layout/cmd"
	"floor-layout/internal/data/cache"
	"floor-layout/internal/data/repository"
	"floor-layout/internal/wire"
	"floor-layout/pkg/database"
	"floor-layout/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("db_driver", config.Database.Driver),
	)

	repos, closeDB := openRepository(config, logger)
	defer closeDB()

	layoutCache := cache.NewNoopLayoutCache()
	if config.Redis.Enabled() {
		client, err := database.InitRedis(config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, serving layouts without cache", zap.Error(err))
		} else {
			defer client.Close()
			ttl := time.Duration(config.Redis.TTLSeconds) * time.Second
			layoutCache = cache.NewRedisLayoutCache(client, ttl, logger)
			logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
		}
	}

	// Wire all dependencies
	app := wire.Wiring(repos, layoutCache, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}

// openRepository connects the configured database, applies the schema and
// returns the repositories with a close func.
func openRepository(config *utils.Config, logger *zap.Logger) (*repository.Repository, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch config.Database.Driver {
	case "postgres":
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := database.MigratePostgres(ctx, db); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("Postgres connected successfully")
		return repository.NewRepository(db, logger), db.Close

	case "sqlite", "":
		db, err := database.OpenSQLite(config.Database.SQLitePath)
		if err != nil {
			logger.Fatal("Failed to open database", zap.Error(err))
		}
		if err := database.MigrateSQLite(ctx, db); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("SQLite opened successfully", zap.String("path", config.Database.SQLitePath))
		return repository.NewSQLiteRepository(db, logger), func() { db.Close() }

	default:
		logger.Fatal("Unknown DB_DRIVER", zap.String("driver", config.Database.Driver))
		return nil, nil
	}
}

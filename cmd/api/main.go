package main

import (
	"context"
	"fmt"
	"os"

	_ "time/tzdata" // Embed zone data for TIMEZONE in minimal images

	"confeitaria/internal/config"
	"confeitaria/internal/database"
	"confeitaria/internal/dates"
	_ "confeitaria/internal/docs" // Import swagger docs
	"confeitaria/internal/logger"
	"confeitaria/internal/server"
	"confeitaria/internal/storage"
	"confeitaria/internal/validator"
)

// @title           Confeitaria API
// @version         1.0
// @description     Backend of the confeitaria dashboard: orders, catalog, customers, menus and finances.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	avatars, closeAvatars, err := openAvatarStore(appConfig)
	if err != nil {
		return fmt.Errorf("failed to open avatar storage: %w", err)
	}
	defer closeAvatars()

	validator.Register()

	router := server.NewRouter(server.Deps{
		DB:          dbManager.DB(),
		Config:      appConfig,
		Clock:       dates.NewClock(appConfig.Timezone),
		AvatarStore: avatars,
	})

	log.Infof("Starting confeitaria API on port %s (consistency=%s, timezone=%s)",
		appConfig.Port, appConfig.ConsistencyMode, appConfig.Timezone)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

// openAvatarStore picks the avatar backend named by AVATAR_STORAGE.
func openAvatarStore(cfg *config.Config) (storage.AvatarStore, func(), error) {
	switch cfg.AvatarStorage {
	case "gcs":
		store, err := storage.NewGCSAvatarStore(context.Background(), cfg.AvatarBucket, cfg.AvatarPublicBaseURL, cfg.GCSCredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Get().Warnf("avatar storage close error: %v", err)
			}
		}, nil
	case "local", "":
		store, err := storage.NewLocalAvatarStore(cfg.AvatarDir, cfg.AvatarPublicBaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown AVATAR_STORAGE %q (use local or gcs)", cfg.AvatarStorage)
}

package main

import (
	"context"

	"book-review/infra"
	"book-review/logger"
	"book-review/repositories"
	"book-review/services"
)

// スキーマ作成とシードユーザーの投入だけを行う
func main() {
	infra.Initialize()
	cfg, err := infra.LoadConfig(context.Background())
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProd()})
	log := logger.Get()

	db, err := infra.SetupDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() { _ = infra.CloseDB(db) }()

	if err := infra.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	hasher, err := services.NewPasswordHasher(cfg.PasswordMode)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid password scheme")
	}
	authService := services.NewAuthService(repositories.NewAuthRepository(db), hasher)
	if err := authService.Seed(); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed users")
	}
	log.Info().Msg("Migration finished")
}

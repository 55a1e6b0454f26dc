package infra

import (
	"book-review/logger"

	"github.com/joho/godotenv"
)

// Initialize は.envがあれば環境変数に読み込む
func Initialize() {
	if err := godotenv.Load(); err != nil {
		logger.Get().Info().Msg("No .env file found; using environment variables")
	}
}

package infra

import (
	"fmt"
	"time"

	"book-review/logger"
	"book-review/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupDB opens PostgreSQL when DB_NAME is set, otherwise the SQLite file at DB_PATH.
func SetupDB(cfg *Config) (*gorm.DB, error) {
	gormConfig := newGormConfig()

	if cfg.DB.Name != "" {
		// 本番環境ではsslmode=require、それ以外はsslmode=disable
		sslmode := "disable"
		if cfg.IsProd() {
			sslmode = "require"
		}

		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s connect_timeout=10",
			cfg.DB.Host,
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Name,
			cfg.DB.Port,
			sslmode,
		)

		db, err := gorm.Open(postgres.Open(dsn), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("connect postgres %s@%s/%s: %w", cfg.DB.User, cfg.DB.Host, cfg.DB.Name, err)
		}
		logger.Get().Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.Name).Msg("Setup postgres database")
		return db, nil
	}

	db, err := OpenSQLite(cfg.DB.Path, gormConfig)
	if err != nil {
		return nil, err
	}
	logger.Get().Info().Str("path", cfg.DB.Path).Msg("Setup sqlite database")
	return db, nil
}

// OpenSQLite opens a SQLite database on a single connection. SQLite
// serializes writers anyway, and a ":memory:" database only exists on the
// connection that created it.
func OpenSQLite(path string, gormConfig *gorm.Config) (*gorm.DB, error) {
	if gormConfig == nil {
		gormConfig = newGormConfig()
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// ユーザー未登録は通常の分岐なのでログに出さない
func newGormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(logger.Get(), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Review{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

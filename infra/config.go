package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string `env:"PORT, default=3000"`
	Env          string `env:"ENV, default=development"`
	LogLevel     string `env:"LOG_LEVEL, default=info"`
	AutoMigrate  bool   `env:"AUTO_MIGRATE, default=true"`
	PasswordMode string `env:"PASSWORD_SCHEME, default=plain"`
	TemplatesDir string `env:"TEMPLATES_DIR, default=templates"`
	StaticDir    string `env:"STATIC_DIR, default=public"`

	DB      DBConfig
	Catalog CatalogConfig
	Redis   RedisConfig
}

type DBConfig struct {
	Name     string `env:"DB_NAME"`
	Host     string `env:"DB_HOST, default=localhost"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Port     string `env:"DB_PORT, default=5432"`
	Path     string `env:"DB_PATH, default=bookreviews.db"`
}

type CatalogConfig struct {
	BaseURL     string        `env:"CATALOG_BASE_URL, default=https://www.googleapis.com/books/v1"`
	Timeout     time.Duration `env:"CATALOG_TIMEOUT, default=10s"`
	SearchLimit int           `env:"CATALOG_SEARCH_LIMIT, default=5"`
	CacheTTL    time.Duration `env:"CATALOG_CACHE_TTL, default=10m"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// LoadConfig reads the process environment.
func LoadConfig(ctx context.Context) (*Config, error) {
	return loadConfig(ctx, envconfig.OsLookuper())
}

func loadConfig(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Package config はアプリケーション全体の設定を環境変数から読み込みます。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"petcare_backend/internal/platform/db"
	"petcare_backend/internal/platform/mail"
	"petcare_backend/internal/platform/redis"
)

// HTTPConfig はHTTPサーバーの設定です。
type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// AuthConfig は認証まわりの設定です。
type AuthConfig struct {
	JWTSecret          string        `env:"JWT_SECRET" env-required:"true"`
	SessionTokenTTL    time.Duration `env:"SESSION_TOKEN_TTL" env-default:"24h"`
	BcryptCost         int           `env:"BCRYPT_COST" env-default:"10"`
	ExposeResetToken   bool          `env:"EXPOSE_RESET_TOKEN" env-default:"false"`
	ResetRequestLimit  int           `env:"RESET_REQUEST_LIMIT" env-default:"5"`
	ResetRequestWindow time.Duration `env:"RESET_REQUEST_WINDOW" env-default:"1h"`
}

// CacheConfig はキャッシュの設定です。
type CacheConfig struct {
	PetListTTL time.Duration `env:"PET_CACHE_TTL" env-default:"5m"`
}

// LogConfig はログ出力の設定です。
type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

// Config はアプリケーションの全設定です。起動時に一度だけ読み込み、値として各コンストラクタに渡します。
type Config struct {
	Env   string `env:"APP_ENV" env-default:"local"`
	HTTP  HTTPConfig
	DB    db.Config
	Redis redis.Config
	Auth  AuthConfig
	Mail  mail.Config
	Cache CacheConfig
	Log   LogConfig
}

// Load は .env ファイル（存在する場合）と環境変数から設定を読み込みます。
// 既に設定されている環境変数は .env の値で上書きされません。
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	} else if err != nil {
		slog.Debug(".env file not found, using environment variables only")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate は値の組み合わせを検証します。
func (c Config) Validate() error {
	switch {
	case c.Auth.SessionTokenTTL <= 0:
		return errors.New("SESSION_TOKEN_TTL must be positive")
	case c.Auth.ResetRequestLimit > 0 && c.Auth.ResetRequestWindow <= 0:
		return errors.New("RESET_REQUEST_WINDOW must be positive when RESET_REQUEST_LIMIT is set")
	case c.DB.Driver != db.DriverPostgres && c.DB.Driver != db.DriverSQLite:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	return nil
}

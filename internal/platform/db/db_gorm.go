// Package db はGORMによるデータベース接続とマイグレーションを提供します。
package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"petcare_backend/internal/feature/auth/domain/entity"
	petadapters "petcare_backend/internal/feature/pets/adapters"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// retryInterval は接続リトライの間隔です。
	retryInterval = 3 * time.Second
)

// Config はデータベース接続設定です。
type Config struct {
	Driver         string        `env:"DB_DRIVER" env-default:"postgres"`
	URL            string        `env:"DATABASE_URL"`
	Host           string        `env:"DB_HOST" env-default:"localhost"`
	Port           string        `env:"DB_PORT" env-default:"5432"`
	User           string        `env:"DB_USER"`
	Password       string        `env:"DB_PASSWORD"`
	Name           string        `env:"DB_NAME" env-default:"petcare"`
	SSLMode        string        `env:"DB_SSLMODE" env-default:"disable"`
	InstanceName   string        `env:"INSTANCE_CONNECTION_NAME"`
	SQLitePath     string        `env:"SQLITE_PATH" env-default:"petcare.db"`
	RunMigrations  bool          `env:"RUN_MIGRATIONS" env-default:"false"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" env-default:"60s"`
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read db config: %w", err)
	}
	return cfg, nil
}

// BuildDSN はPostgreSQL用のDSNを組み立てます。
// DATABASE_URLが設定されていればそれを優先し、次にCloud SQLのUnixソケット、最後にTCP接続を使います。
func BuildDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	if cfg.InstanceName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.InstanceName, cfg.User, cfg.Password, cfg.Name)
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
}

// Opener はDSNからDB接続を開きます。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), gormConfig())
}

// ConnectWithRetry はtimeoutに達するまで一定間隔で接続を再試行します。
func ConnectWithRetry(ctx context.Context, dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	var conn *gorm.DB
	attempt := 0

	backoff := retry.WithMaxDuration(timeout, retry.NewConstant(retryInterval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		db, err := open(dsn)
		if err != nil {
			slog.WarnContext(ctx, "DB connect failed, retrying", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		conn = db
		return nil
	})
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").
			With("attempts", attempt).
			With("timeout", timeout.String()).
			Wrap(err)
	}
	return conn, nil
}

// sqliteDSN は外部キー制約を有効にしたSQLiteのDSNを返します。
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_foreign_keys=on"
}

// Open は設定に応じてPostgreSQLまたはSQLiteに接続し、必要であればマイグレーションを実行します。
func Open(ctx context.Context, cfg Config) (*gorm.DB, error) {
	var (
		conn *gorm.DB
		err  error
	)

	switch cfg.Driver {
	case DriverSQLite:
		conn, err = gorm.Open(sqlite.Open(sqliteDSN(cfg.SQLitePath)), gormConfig())
		if err != nil {
			return nil, oops.Code("DB_CONNECT_FAILED").With("driver", cfg.Driver).Wrap(err)
		}
		slog.InfoContext(ctx, "using sqlite", "path", cfg.SQLitePath)
	case DriverPostgres, "":
		conn, err = ConnectWithRetry(ctx, BuildDSN(cfg), cfg.ConnectTimeout, openPostgres)
		if err != nil {
			return nil, err
		}
	default:
		return nil, oops.Code("CONFIG_INVALID").Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	if cfg.RunMigrations {
		if err := Migrate(conn); err != nil {
			return nil, err
		}
	}
	return conn, nil
}

// Migrate はユーザーとペットのテーブルを作成・更新します。
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&entity.User{},
		&petadapters.PetModel{},
	); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "auto migrate").Wrap(err)
	}
	return nil
}

// Ping はデータベースへの疎通を確認します。
func Ping(ctx context.Context, conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

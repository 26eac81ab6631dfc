// Command migrate はデータベースのテーブルを作成・更新して終了します。
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"petcare_backend/internal/platform/db"
	"petcare_backend/internal/platform/logger"
)

func main() {
	ctx := context.Background()
	logger.New(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment variables only")
	}

	cfg, err := db.LoadConfigFromEnv()
	if err != nil {
		logger.LogError(ctx, "failed to load db config", err)
		os.Exit(1)
	}
	// マイグレーションはOpenではなく明示的に実行する
	cfg.RunMigrations = false

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		logger.LogError(ctx, "database unavailable", err)
		os.Exit(1)
	}
	if err := db.Migrate(conn); err != nil {
		logger.LogError(ctx, "migration failed", err)
		os.Exit(1)
	}
	slog.Info("migration completed", "driver", cfg.Driver)
}

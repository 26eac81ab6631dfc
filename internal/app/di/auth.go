// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	authusecase "petcare_backend/internal/feature/auth/usecase"
	"petcare_backend/internal/platform/config"
	"petcare_backend/internal/platform/mail"
	"petcare_backend/internal/shared/ratelimiter"
)

// NewMailer creates the ResetMailer for the configuration.
// If no SMTP host is configured, it falls back to a mailer that only logs.
func NewMailer(cfg mail.Config) (authusecase.ResetMailer, error) {
	if !cfg.Enabled() {
		slog.Warn("MAIL_HOST is not set, password reset emails will only be logged")
		return mail.NewLogMailer(), nil
	}
	return mail.NewSMTPMailer(cfg)
}

// NewResetLimiter creates the throttle for password reset requests.
// If Redis is available, the limit is shared between instances. Otherwise, it is kept in memory.
// It returns nil when throttling is disabled.
func NewResetLimiter(rdb *redis.Client, cfg config.AuthConfig) authusecase.RateLimiter {
	if cfg.ResetRequestLimit <= 0 {
		return nil
	}
	if rdb != nil {
		return ratelimiter.NewRedisLimiter(rdb, cfg.ResetRequestLimit, cfg.ResetRequestWindow, "ratelimit")
	}
	return ratelimiter.NewLimiter(cfg.ResetRequestLimit, cfg.ResetRequestWindow)
}

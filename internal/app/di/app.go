package di

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"petcare_backend/internal/app/router"
	authadapters "petcare_backend/internal/feature/auth/adapters"
	authhandler "petcare_backend/internal/feature/auth/transport/handler"
	authusecase "petcare_backend/internal/feature/auth/usecase"
	pethandler "petcare_backend/internal/feature/pets/transport/handler"
	petusecase "petcare_backend/internal/feature/pets/usecase"
	"petcare_backend/internal/platform/config"
	"petcare_backend/internal/platform/db"
	platformhandler "petcare_backend/internal/platform/http/handler"
	jwtmw "petcare_backend/internal/platform/jwt"
	"petcare_backend/internal/platform/metrics"
	"petcare_backend/internal/platform/password"
)

// Infra is the set of external connections the application runs on.
type Infra struct {
	DB    *gorm.DB
	Redis *redis.Client // optional
	// Registry receives the application metrics. nil means prometheus.DefaultRegisterer.
	Registry *prometheus.Registry
}

// NewApp wires repositories, usecases and handlers and returns the HTTP router.
func NewApp(cfg config.Config, infra Infra) (*gin.Engine, error) {
	codec, err := jwtmw.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.SessionTokenTTL)
	if err != nil {
		return nil, err
	}
	mailer, err := NewMailer(cfg.Mail)
	if err != nil {
		return nil, err
	}

	var (
		reg      prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if infra.Registry != nil {
		reg, gatherer = infra.Registry, infra.Registry
	}
	authMetrics := metrics.NewAuth(reg)

	// Repository
	userRepo := authadapters.NewUserRepository(infra.DB)
	petRepo := NewPetRepository(infra.DB, infra.Redis, cfg.Cache.PetListTTL)

	// Usecase
	authOpts := []authusecase.Option{authusecase.WithMetrics(authMetrics)}
	if limiter := NewResetLimiter(infra.Redis, cfg.Auth); limiter != nil {
		authOpts = append(authOpts, authusecase.WithResetLimiter(limiter))
	}
	authUC := authusecase.NewAuthUsecase(
		userRepo,
		password.NewBcryptHasher(cfg.Auth.BcryptCost),
		codec,
		codec,
		mailer,
		authOpts...,
	)
	userUC := authusecase.NewUserUsecase(userRepo, authusecase.WithAccountDeletedHook(petRepo.InvalidateOwner))
	petUC := petusecase.NewPetUsecase(petRepo)

	readiness := map[string]platformhandler.Pinger{
		"db": func(ctx context.Context) error { return db.Ping(ctx, infra.DB) },
	}
	if infra.Redis != nil {
		readiness["redis"] = func(ctx context.Context) error { return infra.Redis.Ping(ctx).Err() }
	}

	return router.NewRouter(router.Deps{
		Auth:           authhandler.NewAuthHandler(authUC, cfg.Auth.ExposeResetToken),
		Users:          authhandler.NewUserHandler(userUC),
		Pets:           pethandler.NewPetHandler(petUC),
		Sessions:       codec,
		GateMetrics:    authMetrics,
		Readiness:      readiness,
		Metrics:        promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}), nil
}

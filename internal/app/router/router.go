// Package router はHTTPルーティングを定義します。
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "petcare_backend/internal/feature/auth/transport/handler"
	pethandler "petcare_backend/internal/feature/pets/transport/handler"
	platformhandler "petcare_backend/internal/platform/http/handler"
	"petcare_backend/internal/platform/http/middleware"
	jwtmw "petcare_backend/internal/platform/jwt"
)

// Deps はルーターが必要とするハンドラーとミドルウェアの依存です。
type Deps struct {
	Auth  *authhandler.AuthHandler
	Users *authhandler.UserHandler
	Pets  *pethandler.PetHandler

	// Sessions はAuthorizationヘッダーのトークンを検証します。
	Sessions jwtmw.SessionDecoder
	// GateMetrics は認証ミドルウェアの拒否を記録します。nilでも構いません。
	GateMetrics jwtmw.RejectionRecorder

	Readiness map[string]platformhandler.Pinger
	// Metrics は /metrics で公開するハンドラーです。nilの場合は公開しません。
	Metrics http.Handler

	// AllowedOrigins が空の場合は全てのオリジンを許可します。
	AllowedOrigins []string
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// NewRouter はルーティングを設定したginエンジンを返します。
func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig(d.AllowedOrigins)))

	// 認証不要
	// 導通確認用
	r.GET("/health", platformhandler.Health)
	r.HEAD("/health", platformhandler.Health)
	r.GET("/readyz", platformhandler.Readiness(d.Readiness))
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}

	gate := jwtmw.AuthRequired(d.Sessions, d.GateMetrics)

	api := r.Group("/api")
	{
		// 新規ユーザー登録
		api.POST("/users/", d.Auth.Signup)
		// ログイン（JWT 発行）
		api.POST("/auth/login", d.Auth.Login)
		// パスワードリセット
		api.POST("/auth/password/", d.Auth.RequestPasswordReset)
		api.POST("/auth/password/confirm", d.Auth.ConfirmPasswordReset)
	}

	// 認証必須のルート
	users := api.Group("/users", gate)
	{
		users.GET("/", d.Users.Me)
		users.PATCH("/", d.Users.UpdateMe)
		users.DELETE("/me/", d.Users.DeleteMe)
	}

	pets := api.Group("/pets", gate)
	{
		pets.POST("/", d.Pets.Create)
		pets.GET("/", d.Pets.List)
		pets.GET("/:id", d.Pets.Get)
		pets.PATCH("/:id", d.Pets.Update)
		pets.DELETE("/:id", d.Pets.Delete)
	}

	return r
}

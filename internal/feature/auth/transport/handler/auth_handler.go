// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"petcare_backend/internal/api"
	"petcare_backend/internal/feature/auth/domain/entity"
	"petcare_backend/internal/feature/auth/transport/http/dto"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は指定されたメールアドレスとパスワードで新規ユーザーを登録します。
	Signup(ctx context.Context, email, password string) (*entity.User, error)
	// Login はユーザーを認証し、成功時にセッショントークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// RequestPasswordReset はリセットメールを送信し、発行したトークンを返します。
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	// ConfirmPasswordReset はリセットトークンを使ってパスワードを再設定します。
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth             AuthUsecase
	exposeResetToken bool
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// exposeResetTokenがtrueの場合のみ、リセット要求のレスポンスにトークンを含めます。
func NewAuthHandler(auth AuthUsecase, exposeResetToken bool) *AuthHandler {
	return &AuthHandler{auth: auth, exposeResetToken: exposeResetToken}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - パスワードポリシー違反は400、メール重複は409を返却
// - 成功時は作成したユーザーと201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req api.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "signup validation failed", err)
		return
	}
	user, err := h.auth.Signup(c.Request.Context(), string(req.Email), req.Password)
	if err != nil {
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, "signup failed", err)
		return
	}
	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 認証失敗時はユーザーの有無に関わらず同じ400を返却
// - 認証成功時はトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "login validation failed", err)
		return
	}
	token, err := h.auth.Login(c.Request.Context(), string(req.Email), req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, "login failed", err)
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}

// RequestPasswordReset はパスワードリセットメールの送信を要求します。
// 未登録のメールアドレスには404を返します。
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req api.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "password reset validation failed", err)
		return
	}
	token, err := h.auth.RequestPasswordReset(c.Request.Context(), string(req.Email))
	if err != nil {
		slog.Warn("password reset request failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, "password reset request failed", err)
		return
	}

	resp := api.PasswordResetResponse{Message: "Password reset email sent"}
	if h.exposeResetToken {
		resp.Token = token
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmPasswordReset はリセットトークンと新しいパスワードでパスワードを再設定します。
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req api.PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "password reset confirm validation failed", err)
		return
	}
	if err := h.auth.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		slog.Warn("password reset confirm failed", "error", err, "remote_addr", c.ClientIP())
		writeError(c, "password reset confirm failed", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password has been reset successfully"})
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"petcare_backend/internal/api"
	"petcare_backend/internal/feature/auth/domain"
	"petcare_backend/internal/platform/logger"
)

// errorMapping はドメインエラーとHTTPレスポンスの対応です。上から順に評価します。
var errorMapping = []struct {
	err      error
	status   int
	category string
}{
	{domain.ErrInvalidCredentials, http.StatusBadRequest, "invalid_credentials"},
	{domain.ErrTokenExpired, http.StatusBadRequest, "token_expired"},
	{domain.ErrTokenInvalid, http.StatusBadRequest, "invalid_token"},
	{domain.ErrWeakPassword, http.StatusBadRequest, "weak_password"},
	{domain.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
	{domain.ErrEmailAlreadyRegistered, http.StatusConflict, "email_already_registered"},
	{domain.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{domain.ErrTooManyRequests, http.StatusTooManyRequests, "too_many_requests"},
	{domain.ErrDeliveryFailed, http.StatusInternalServerError, "delivery_failed"},
}

// writeError はエラーをカテゴリとメッセージを持つJSONに変換して返します。
// 内部エラーの詳細はログにのみ出力し、レスポンスには含めません。
func writeError(c *gin.Context, msg string, err error) {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			if m.status >= http.StatusInternalServerError {
				logger.LogError(c.Request.Context(), msg, err, "remote_addr", c.ClientIP())
			}
			c.JSON(m.status, api.ErrorResponse{Error: m.category, Message: m.err.Error()})
			return
		}
	}
	logger.LogError(c.Request.Context(), msg, err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal_error", Message: "internal server error"})
}

func writeBindError(c *gin.Context, msg string, err error) {
	slog.Warn(msg, "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid_request", Message: "invalid request"})
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"petcare_backend/internal/api"
	"petcare_backend/internal/feature/auth/domain/entity"
	"petcare_backend/internal/feature/auth/transport/http/dto"
	jwtmw "petcare_backend/internal/platform/jwt"
)

// UserUsecase は認証済みユーザー自身のプロフィール操作を定義します。
type UserUsecase interface {
	GetProfile(ctx context.Context, userID uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uint, update entity.ProfileUpdate) (*entity.User, error)
	DeleteAccount(ctx context.Context, userID uint) error
}

// UserHandler は /api/users/ 配下の認証必須エンドポイントを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

func currentUser(c *gin.Context) (jwtmw.Identity, bool) {
	id, ok := jwtmw.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "missing_credentials", Message: "authentication required"})
	}
	return id, ok
}

// Me は認証済みユーザーのプロフィールを返します。
func (h *UserHandler) Me(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.users.GetProfile(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, "get profile failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateMe は名前とアバターURLを更新します。
func (h *UserHandler) UpdateMe(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	var req api.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "profile update validation failed", err)
		return
	}
	user, err := h.users.UpdateProfile(c.Request.Context(), id.UserID, dto.ToProfileUpdate(req))
	if err != nil {
		writeError(c, "update profile failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteMe は認証済みユーザーを削除します。所有するペットも削除されます。
func (h *UserHandler) DeleteMe(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.users.DeleteAccount(c.Request.Context(), id.UserID); err != nil {
		writeError(c, "delete account failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

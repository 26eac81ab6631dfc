// Package api はHTTP APIのリクエスト・レスポンスのJSON型を定義します。
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse defines model for MessageResponse.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse はログイン成功時のレスポンスボディです。
type TokenResponse struct {
	Token string `json:"token"`
}

// SignupRequest defines model for SignupRequest.
type SignupRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required"`
}

// LoginRequest defines model for LoginRequest.
type LoginRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required"`
}

// PasswordResetRequest はパスワードリセット要求のリクエストボディです。
type PasswordResetRequest struct {
	Email openapi_types.Email `json:"email" binding:"required,email"`
}

// PasswordResetResponse はパスワードリセット要求のレスポンスボディです。
// Tokenは設定で明示的に有効化された場合のみ含まれます。
type PasswordResetResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// PasswordResetConfirmRequest はパスワード再設定のリクエストボディです。
type PasswordResetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UserResponse defines model for UserResponse.
type UserResponse struct {
	ID        uint                `json:"id"`
	Email     openapi_types.Email `json:"email"`
	Name      string              `json:"name,omitempty"`
	AvatarURL string              `json:"avatar_url,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// UserUpdateRequest はプロフィール更新のリクエストボディです。省略したフィールドは変更されません。
type UserUpdateRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url,max=2048"`
}

// PetCreateRequest defines model for PetCreateRequest.
type PetCreateRequest struct {
	Name     string             `json:"name" binding:"required,max=100"`
	Breed    string             `json:"breed" binding:"required,max=100"`
	Birth    openapi_types.Date `json:"birth"`
	Gender   string             `json:"gender" binding:"required,oneof=male female"`
	Chip     *string            `json:"chip" binding:"omitempty,max=50"`
	Illness  bool               `json:"illness"`
	Neutered bool               `json:"neutered"`
	Weight   *float64           `json:"weight" binding:"omitempty,gt=0"`
}

// PetUpdateRequest はペット更新のリクエストボディです。体重と避妊・去勢の有無のみ更新できます。
type PetUpdateRequest struct {
	Weight   *float64 `json:"weight" binding:"omitempty,gt=0"`
	Neutered *bool    `json:"neutered"`
}

// PetResponse defines model for PetResponse.
type PetResponse struct {
	ID       uint               `json:"id"`
	UserID   uint               `json:"user_id"`
	Name     string             `json:"name"`
	Breed    string             `json:"breed"`
	Birth    openapi_types.Date `json:"birth"`
	Gender   string             `json:"gender"`
	Chip     *string            `json:"chip,omitempty"`
	Illness  bool               `json:"illness"`
	Neutered bool               `json:"neutered"`
	Weight   *float64           `json:"weight,omitempty"`
}

// Package dto はauthフィーチャーのAPI型とドメインエンティティの相互変換を定義します。
package dto

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"petcare_backend/internal/api"
	"petcare_backend/internal/feature/auth/domain/entity"
)

// ToUserResponse はユーザーエンティティをレスポンス型に変換します。パスワードハッシュは含めません。
func ToUserResponse(u *entity.User) api.UserResponse {
	return api.UserResponse{
		ID:        u.ID,
		Email:     openapi_types.Email(u.Email),
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// ToProfileUpdate はプロフィール更新リクエストをドメインの更新内容に変換します。
func ToProfileUpdate(req api.UserUpdateRequest) entity.ProfileUpdate {
	return entity.ProfileUpdate{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	}
}

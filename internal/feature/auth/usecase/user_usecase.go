package usecase

import (
	"context"
	"errors"

	"github.com/samber/oops"

	"petcare_backend/internal/feature/auth/domain"
	"petcare_backend/internal/feature/auth/domain/entity"
)

// userUsecase は認証済みユーザー自身のプロフィール操作を実装します。
type userUsecase struct {
	users     UserRepository
	onDeleted []func(ctx context.Context, userID uint)
}

// UserOption はuserUsecaseの任意の設定です。
type UserOption func(*userUsecase)

// WithAccountDeletedHook はアカウント削除の成功後に呼ばれる処理を追加します。
// 所有データのキャッシュ破棄などに使用します。
func WithAccountDeletedHook(hook func(ctx context.Context, userID uint)) UserOption {
	return func(u *userUsecase) { u.onDeleted = append(u.onDeleted, hook) }
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, opts ...UserOption) *userUsecase {
	u := &userUsecase{users: users}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// GetProfile はユーザーを取得します。
func (u *userUsecase) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, wrapLookup(err, userID)
	}
	return user, nil
}

// UpdateProfile は名前とアバターURLを更新します。
// 更新項目が無い場合は現在のプロフィールをそのまま返します。
func (u *userUsecase) UpdateProfile(ctx context.Context, userID uint, update entity.ProfileUpdate) (*entity.User, error) {
	if update.IsEmpty() {
		return u.GetProfile(ctx, userID)
	}
	user, err := u.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, wrapLookup(err, userID)
	}
	return user, nil
}

// DeleteAccount はユーザーを削除します。所有するペットは外部キーによって削除されます。
func (u *userUsecase) DeleteAccount(ctx context.Context, userID uint) error {
	if err := u.users.Delete(ctx, userID); err != nil {
		return wrapLookup(err, userID)
	}
	for _, hook := range u.onDeleted {
		hook(ctx, userID)
	}
	return nil
}

func wrapLookup(err error, userID uint) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrUserNotFound
	}
	return oops.Code("USER_STORE_FAILED").With("user_id", userID).Wrap(err)
}

package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"

	"petcare_backend/internal/feature/auth/domain"
)

// パスワードリセット要求結果のラベル
const (
	ResetSent           = "sent"
	ResetUnknownUser    = "unknown_user"
	ResetThrottled      = "throttled"
	ResetDeliveryFailed = "delivery_failed"
	ResetError          = "error"
)

// ResetTokenCodec はパスワードリセットトークンの発行と検証を行います。
type ResetTokenCodec interface {
	IssueReset(email string) (string, error)
	ValidateReset(token string) (string, error)
}

// ResetMailer はパスワードリセット用のメールを送信します。
// 送信に失敗した場合はdomain.ErrDeliveryFailedをラップしたエラーを返します。
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, to, token string) error
}

// RateLimiter はキーごとの呼び出し回数を制限します。
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

func resetLimitKey(email string) string {
	return "password_reset:" + email
}

// RequestPasswordReset はリセットトークンを発行してメールで送信し、発行したトークンを返します。
// 未登録のメールアドレスにはdomain.ErrUserNotFound、送信失敗にはdomain.ErrDeliveryFailedを返します。
// 送信に失敗した場合もトークンは破棄せず、エラーと一緒に返します。
func (u *authUsecase) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", oops.Code("INVALID_ARGUMENT").Wrapf(domain.ErrInvalidArgument, "email is required")
	}

	if u.limiter != nil {
		allowed, err := u.limiter.Allow(ctx, resetLimitKey(email))
		switch {
		case err != nil:
			// 制限ストアの障害時はリセット要求を止めない
			slog.WarnContext(ctx, "reset rate limiter unavailable", "error", err)
		case !allowed:
			u.recordReset(ResetThrottled)
			return "", domain.ErrTooManyRequests
		}
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			u.recordReset(ResetUnknownUser)
			return "", domain.ErrUserNotFound
		}
		u.recordReset(ResetError)
		return "", oops.Code("USER_LOOKUP_FAILED").With("operation", "request password reset").Wrap(err)
	}

	token, err := u.resets.IssueReset(user.Email)
	if err != nil {
		u.recordReset(ResetError)
		return "", oops.Code("TOKEN_ISSUE_FAILED").With("user_id", user.ID).Wrap(err)
	}

	if err := u.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		u.recordReset(ResetDeliveryFailed)
		if !errors.Is(err, domain.ErrDeliveryFailed) {
			err = errors.Join(domain.ErrDeliveryFailed, err)
		}
		return token, oops.Code("RESET_DELIVERY_FAILED").With("user_id", user.ID).Wrap(err)
	}

	u.recordReset(ResetSent)
	return token, nil
}

// ConfirmPasswordReset はリセットトークンを検証し、新しいパスワードを設定します。
// トークンの消費は記録しないため、同じトークンは期限内であれば再利用できます。
func (u *authUsecase) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	email, err := u.resets.ValidateReset(token)
	if err != nil {
		return err
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return oops.Code("USER_LOOKUP_FAILED").With("operation", "confirm password reset").Wrap(err)
	}

	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		return oops.Code("PASSWORD_HASH_FAILED").Wrap(err)
	}
	if err := u.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return oops.Code("PASSWORD_UPDATE_FAILED").With("user_id", user.ID).Wrap(err)
	}

	slog.InfoContext(ctx, "password reset completed", "user_id", user.ID)
	return nil
}

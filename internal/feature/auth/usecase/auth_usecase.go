// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"

	"petcare_backend/internal/feature/auth/domain"
	"petcare_backend/internal/feature/auth/domain/entity"
)

// dummyPasswordHash はユーザーが存在しない場合にも比較処理を行うためのダミーハッシュです。
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// ログイン試行結果のラベル
const (
	LoginSuccess            = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginError              = "error"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、domain.ErrEmailAlreadyRegisteredを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに完全一致するユーザーを取得します。
	// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdatePassword はユーザーのパスワードハッシュを置き換えます。
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error

	// UpdateProfile は指定されたプロフィール項目のみを更新し、更新後のユーザーを返します。
	UpdateProfile(ctx context.Context, id uint, update entity.ProfileUpdate) (*entity.User, error)

	// Delete はユーザーを削除します。
	Delete(ctx context.Context, id uint) error
}

// PasswordHasher はパスワードのハッシュ化と検証を行います。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// JWTGenerator はセッショントークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みセッショントークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// AuthMetrics は認証関連のイベントを記録します。
type AuthMetrics interface {
	LoginAttempt(result string)
	PasswordResetRequested(result string)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	hasher       PasswordHasher
	jwtGenerator JWTGenerator
	resets       ResetTokenCodec
	mailer       ResetMailer
	limiter      RateLimiter
	metrics      AuthMetrics
}

// Option はauthUsecaseの任意の依存を設定します。
type Option func(*authUsecase)

// WithResetLimiter はパスワードリセット要求の回数制限を設定します。
func WithResetLimiter(l RateLimiter) Option {
	return func(u *authUsecase) { u.limiter = l }
}

// WithMetrics は認証メトリクスの記録先を設定します。
func WithMetrics(m AuthMetrics) Option {
	return func(u *authUsecase) { u.metrics = m }
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(
	users UserRepository,
	hasher PasswordHasher,
	jwtGenerator JWTGenerator,
	resets ResetTokenCodec,
	mailer ResetMailer,
	opts ...Option,
) *authUsecase {
	u := &authUsecase{
		users:        users,
		hasher:       hasher,
		jwtGenerator: jwtGenerator,
		resets:       resets,
		mailer:       mailer,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録します。
// メールアドレスは大文字小文字を区別して完全一致で重複判定されます。
func (u *authUsecase) Signup(ctx context.Context, email, password string) (*entity.User, error) {
	if email == "" {
		return nil, oops.Code("INVALID_ARGUMENT").Wrapf(domain.ErrInvalidArgument, "email is required")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	// 事前チェック。同時登録による競合はリポジトリの一意制約で検出される
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, oops.Code("USER_LOOKUP_FAILED").With("operation", "signup").Wrap(err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("PASSWORD_HASH_FAILED").Wrap(err)
	}

	user := &entity.User{Email: email, Password: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyRegistered) {
			return nil, domain.ErrEmailAlreadyRegistered
		}
		return nil, oops.Code("USER_CREATE_FAILED").With("operation", "signup").Wrap(err)
	}
	return user, nil
}

// Login はユーザーを認証し、成功時にセッショントークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもパスワード比較を実行します。
// ユーザー未検出とパスワード不一致はどちらもdomain.ErrInvalidCredentialsになります。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		u.recordLogin(LoginError)
		return "", oops.Code("USER_LOOKUP_FAILED").With("operation", "login").Wrap(err)
	}

	passwordHash := dummyPasswordHash
	if err == nil {
		passwordHash = user.Password
	}

	// 引数が空の場合のエラーも認証失敗として扱う
	ok, verifyErr := u.hasher.Verify(password, passwordHash)
	if err != nil || verifyErr != nil || !ok {
		u.recordLogin(LoginInvalidCredentials)
		return "", domain.ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		u.recordLogin(LoginError)
		return "", oops.Code("TOKEN_ISSUE_FAILED").With("user_id", user.ID).Wrap(err)
	}

	u.recordLogin(LoginSuccess)
	slog.DebugContext(ctx, "session token issued", "user_id", user.ID)
	return token, nil
}

func (u *authUsecase) recordLogin(result string) {
	if u.metrics != nil {
		u.metrics.LoginAttempt(result)
	}
}

func (u *authUsecase) recordReset(result string) {
	if u.metrics != nil {
		u.metrics.PasswordResetRequested(result)
	}
}

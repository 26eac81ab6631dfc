// Package jwtmw はセッショントークン・パスワードリセットトークンの署名と検証、
// およびBearerトークンによる認証ミドルウェアを提供します。
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"petcare_backend/internal/feature/auth/domain"
)

const (
	// Issuer はこのサービスが発行するトークンのissクレームです。
	Issuer = "petcare"

	// AudienceSession はセッショントークンのaudクレームです。
	AudienceSession = "session"

	// AudiencePasswordReset はパスワードリセットトークンのaudクレームです。
	// audが異なるため、リセットトークンは認証ミドルウェアを通過できません。
	AudiencePasswordReset = "password_reset"

	// DefaultSessionTTL はTTLが設定されていない場合のセッショントークンの有効期間です。
	DefaultSessionTTL = 24 * time.Hour

	// ResetTokenTTL はパスワードリセットトークンの有効期間です。
	ResetTokenTTL = time.Hour
)

// Codec はプロセス全体で共有される署名鍵を保持し、トークンの発行と検証を行います。
// 生成後は不変であり、複数のgoroutineから同時に使用できます。
type Codec struct {
	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

// NewCodec は署名鍵とデフォルトのセッションTTLからCodecを生成します。
// 署名鍵が空の場合はdomain.ErrInvalidArgumentを返します。
func NewCodec(secret string, sessionTTL time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: signing secret must not be empty", domain.ErrInvalidArgument)
	}
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &Codec{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		now:        time.Now,
	}, nil
}

// SessionTTL はデフォルトのセッショントークン有効期間を返します。
func (c *Codec) SessionTTL() time.Duration {
	return c.sessionTTL
}

// sign はクレームをHS256で署名します。
func (c *Codec) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// parse は署名・有効期限・発行者・audを検証し、claimsにデコードします。
// iatは検証しないため、インスタンス間の時刻ずれで発行直後のトークンが拒否されることはありません。
// 期限切れのみの場合はdomain.ErrTokenExpired、それ以外の失敗はdomain.ErrTokenInvalidを返します。
func (c *Codec) parse(tokenStr string, claims jwt.Claims, audience string) error {
	if tokenStr == "" {
		return fmt.Errorf("%w: token is empty", domain.ErrTokenInvalid)
	}

	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(c.now),
	)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, jwt.ErrTokenInvalidAudience), errors.Is(err, jwt.ErrTokenInvalidIssuer):
		// 種類の違うトークンは、期限切れであっても無効として扱う
		return fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", domain.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
	}
}

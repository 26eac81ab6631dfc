package jwtmw

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"petcare_backend/internal/feature/auth/domain"
)

// ResetClaims はパスワードリセットトークンのクレームです。
// セッショントークンとはaudで区別されます。
type ResetClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IssueReset は指定されたメールアドレス用のパスワードリセットトークンを発行します。
// 有効期限は発行から1時間です。トークンの消費は追跡しないため、期限内であれば何度でも使用できます。
func (c *Codec) IssueReset(email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidArgument)
	}

	now := c.now()
	claims := ResetClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{AudiencePasswordReset},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ResetTokenTTL)),
			ID:        uuid.NewString(),
		},
	}
	return c.sign(claims)
}

// ValidateReset はパスワードリセットトークンを検証し、対象のメールアドレスを返します。
// セッショントークンを渡した場合はdomain.ErrTokenInvalidになります。
func (c *Codec) ValidateReset(tokenStr string) (string, error) {
	var claims ResetClaims
	if err := c.parse(tokenStr, &claims, AudiencePasswordReset); err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", fmt.Errorf("%w: email claim is required", domain.ErrTokenInvalid)
	}
	return claims.Email, nil
}

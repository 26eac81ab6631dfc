package jwtmw

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"petcare_backend/internal/feature/auth/domain"
)

// Identity is the authenticated caller extracted from a session token.
type Identity struct {
	UserID uint
	Email  string
}

// SessionClaims is the claim set of a session token.
type SessionClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed session token for the given user with the default TTL.
func (c *Codec) GenerateToken(userID uint, email string) (string, error) {
	return c.IssueSession(userID, email, c.sessionTTL)
}

// IssueSession creates a signed session token that expires after ttl.
func (c *Codec) IssueSession(userID uint, email string, ttl time.Duration) (string, error) {
	if userID == 0 || email == "" {
		return "", fmt.Errorf("%w: user id and email are required", domain.ErrInvalidArgument)
	}
	if ttl <= 0 {
		return "", fmt.Errorf("%w: ttl must be positive", domain.ErrInvalidArgument)
	}

	now := c.now()
	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Audience:  jwt.ClaimStrings{AudienceSession},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	return c.sign(claims)
}

// DecodeSession verifies a session token and returns the identity it carries.
// It fails with domain.ErrTokenExpired once the token is past its expiry and with
// domain.ErrTokenInvalid for bad signatures, malformed tokens, other token kinds or missing claims.
func (c *Codec) DecodeSession(tokenStr string) (Identity, error) {
	var claims SessionClaims
	if err := c.parse(tokenStr, &claims, AudienceSession); err != nil {
		return Identity{}, err
	}
	if claims.UserID == 0 || claims.Email == "" {
		return Identity{}, fmt.Errorf("%w: user_id and email claims are required", domain.ErrTokenInvalid)
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

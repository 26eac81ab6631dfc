package jwtmw

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserID はgin.Contextに認証済みユーザーIDを格納するキーです。
	ContextUserID = "userID"
	// ContextEmail はgin.Contextに認証済みメールアドレスを格納するキーです。
	ContextEmail = "email"
)

type identityKey struct{}

// WithIdentity はIdentityを格納した新しいcontext.Contextを返します。
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext はcontext.ContextからIdentityを取り出します。
// 認証ミドルウェアを通過していないリクエストではfalseを返します。
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.UserID == 0 {
		return Identity{}, false
	}
	return id, true
}

// IdentityFrom はgin.ContextからIdentityを取り出します。
func IdentityFrom(c *gin.Context) (Identity, bool) {
	userID := c.GetUint(ContextUserID)
	email := c.GetString(ContextEmail)
	if userID == 0 || email == "" {
		return Identity{}, false
	}
	return Identity{UserID: userID, Email: email}, true
}

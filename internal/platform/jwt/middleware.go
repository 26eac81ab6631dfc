package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"petcare_backend/internal/api"
)

// Reason は認証ミドルウェアがリクエストを拒否した理由です。
type Reason string

const (
	// ReasonMissingCredentials はAuthorizationヘッダーが無いか、Bearer形式でないことを表します。
	ReasonMissingCredentials Reason = "missing_credentials"
	// ReasonInvalidCredentials はトークンの検証に失敗したことを表します。
	ReasonInvalidCredentials Reason = "invalid_credentials"
)

// Rejection は拒否理由と、レスポンスに含める説明文です。
type Rejection struct {
	Reason  Reason
	Message string
}

// SessionDecoder はセッショントークンを検証してIdentityを返します。
type SessionDecoder interface {
	DecodeSession(token string) (Identity, error)
}

// RejectionRecorder は拒否の発生を記録します。nilの場合は記録しません。
type RejectionRecorder interface {
	GateRejected(reason string)
}

var _ SessionDecoder = (*Codec)(nil)

const bearerScheme = "bearer"

// bearerToken は "Bearer <token>" 形式のヘッダーからトークンを取り出します。スキーム名の大文字小文字は区別しません。
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// Authenticate はAuthorizationヘッダーの値を検証し、成功時はIdentity、失敗時はRejectionを返します。
// データベースには一切アクセスしません。
func Authenticate(decoder SessionDecoder, header string) (Identity, *Rejection) {
	token, ok := bearerToken(header)
	if !ok {
		return Identity{}, &Rejection{
			Reason:  ReasonMissingCredentials,
			Message: "missing bearer token",
		}
	}

	id, err := decoder.DecodeSession(token)
	if err != nil {
		return Identity{}, &Rejection{
			Reason:  ReasonInvalidCredentials,
			Message: err.Error(),
		}
	}
	if id.UserID == 0 || id.Email == "" {
		return Identity{}, &Rejection{
			Reason:  ReasonInvalidCredentials,
			Message: "token is missing user_id or email",
		}
	}
	return id, nil
}

// AuthRequired は認証済みユーザーのみを通過させるGinミドルウェアを返します。
// 拒否した場合は常に403を返します。
func AuthRequired(decoder SessionDecoder, recorder RejectionRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, rej := Authenticate(decoder, c.GetHeader("Authorization"))
		if rej != nil {
			if recorder != nil {
				recorder.GateRejected(string(rej.Reason))
			}
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{
				Error:   string(rej.Reason),
				Message: rej.Message,
			})
			return
		}

		c.Set(ContextUserID, id.UserID)
		c.Set(ContextEmail, id.Email)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

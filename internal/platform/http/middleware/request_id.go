// Package middleware はプラットフォーム共通のginミドルウェアを提供します。
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID はリクエストIDを伝搬するヘッダーです。
const HeaderRequestID = "X-Request-ID"

// ContextRequestID はginコンテキストにリクエストIDを保存するキーです。
const ContextRequestID = "requestID"

// maxRequestIDLength を超える受信IDは信用せずに再生成します。
const maxRequestIDLength = 128

// RequestID はリクエストIDを受け取るか生成し、レスポンスヘッダーとginコンテキストに設定します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

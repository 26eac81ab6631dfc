// Package logger はアプリケーション共通のslogロガーを構築します。
package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/samber/oops"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// New は実行環境に応じたロガーを生成し、slogのデフォルトに設定します。
// localはテキスト形式、それ以外はJSON形式で出力します。
func New(env, level string) *slog.Logger {
	return newWithWriter(os.Stdout, env, level)
}

func newWithWriter(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(env, level)}

	var h slog.Handler
	if env == EnvLocal {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(h).With("env", env)
	slog.SetDefault(l)
	return l
}

// parseLevel はLOG_LEVELを解釈します。未指定の場合、prod以外はDEBUGです。
func parseLevel(env, level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if env == EnvProd {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// LogError はエラーをデフォルトロガーに出力します。
// oopsのエラーであればコードとコンテキストを属性として展開します。
func LogError(ctx context.Context, msg string, err error, args ...any) {
	attrs := append([]any{"error", err.Error()}, args...)

	var oopsErr oops.OopsError
	if errors.As(err, &oopsErr) {
		if code := oopsErr.Code(); code != "" {
			attrs = append(attrs, "code", code)
		}
		if domain := oopsErr.Domain(); domain != "" {
			attrs = append(attrs, "domain", domain)
		}
		for k, v := range oopsErr.Context() {
			attrs = append(attrs, k, v)
		}
	}

	slog.ErrorContext(ctx, msg, attrs...)
}

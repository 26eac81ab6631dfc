package mail

import (
	"context"
	"log/slog"
)

// LogMailer はSMTPが設定されていない環境用のメーラーです。
// 宛先のみを記録し、トークンは出力しません。
type LogMailer struct{}

// NewLogMailer はLogMailerを生成します。
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// SendPasswordReset は送信の代わりにログを出力します。
func (LogMailer) SendPasswordReset(ctx context.Context, to, _ string) error {
	slog.InfoContext(ctx, "smtp not configured, password reset email not sent", "to", to)
	return nil
}

// Package mail はパスワードリセットメールの送信を提供します。
package mail

import "time"

// Config はSMTP送信の設定です。Hostが空の場合はメールを送信せずログに記録します。
type Config struct {
	Host         string        `env:"MAIL_HOST"`
	Port         int           `env:"MAIL_PORT" env-default:"465"`
	Username     string        `env:"MAIL_USERNAME"`
	Password     string        `env:"MAIL_PASSWORD"`
	From         string        `env:"MAIL_FROM" env-default:"no-reply@petcare.local"`
	ResetURLBase string        `env:"RESET_URL_BASE" env-default:"http://localhost:3000/password-reset"`
	Timeout      time.Duration `env:"MAIL_TIMEOUT" env-default:"10s"`
}

// Enabled はSMTPサーバーが設定されているかを返します。
func (c Config) Enabled() bool {
	return c.Host != ""
}

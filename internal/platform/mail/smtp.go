package mail

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
	gomail "github.com/wneessen/go-mail"

	"petcare_backend/internal/feature/auth/domain"
)

const defaultTimeout = 10 * time.Second

// sender はメッセージを送信するクライアントです。*gomail.Client が実装します。
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// SMTPMailer はSMTP（implicit TLS）でパスワードリセットメールを送信します。
type SMTPMailer struct {
	client       sender
	from         string
	resetURLBase string
}

// NewSMTPMailer は設定からSMTPMailerを生成します。
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSSL(),
		gomail.WithTimeout(cfg.Timeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, oops.In("mail").Code("CONFIG_INVALID").With("host", cfg.Host).Wrapf(err, "failed to create smtp client")
	}
	return newSMTPMailer(client, cfg), nil
}

func newSMTPMailer(client sender, cfg Config) *SMTPMailer {
	return &SMTPMailer{client: client, from: cfg.From, resetURLBase: cfg.ResetURLBase}
}

// SendPasswordReset はリセットリンクを含むメールを送信します。
// 失敗した場合はdomain.ErrDeliveryFailedでラップしたエラーを返します。
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	msg, err := m.buildResetMessage(to, token)
	if err != nil {
		return deliveryError(to, err)
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return deliveryError(to, err)
	}
	slog.Info("password reset email sent", "to", to)
	return nil
}

func (m *SMTPMailer) buildResetMessage(to, token string) (*gomail.Msg, error) {
	htmlBody, textBody, err := renderReset(m.resetURLBase, token)
	if err != nil {
		return nil, err
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, err
	}
	if err := msg.To(to); err != nil {
		return nil, err
	}
	msg.Subject(resetSubject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)
	msg.AddAlternativeString(gomail.TypeTextPlain, textBody)
	return msg, nil
}

func deliveryError(to string, err error) error {
	return oops.
		In("mail").
		Code("DELIVERY_FAILED").
		With("to", to).
		Wrap(errors.Join(domain.ErrDeliveryFailed, err))
}

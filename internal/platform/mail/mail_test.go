package mail

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"

	"petcare_backend/internal/feature/auth/domain"
)

type fakeSender struct {
	sent []*gomail.Msg
	err  error
}

func (f *fakeSender) DialAndSendWithContext(_ context.Context, messages ...*gomail.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, messages...)
	return nil
}

func testConfig() Config {
	return Config{
		Host:         "smtp.example.com",
		Port:         465,
		From:         "no-reply@petcare.local",
		ResetURLBase: "https://petcare.example.com/reset?lang=ja",
	}
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	assert.True(t, testConfig().Enabled())
	assert.False(t, Config{}.Enabled())
}

// TestRenderReset はリンクにトークンが含まれ、既存のクエリが保持されることを検証します。
func TestRenderReset(t *testing.T) {
	t.Parallel()

	htmlBody, textBody, err := renderReset("https://petcare.example.com/reset?lang=ja", "a.b+c")
	require.NoError(t, err)

	link, err := resetLink("https://petcare.example.com/reset?lang=ja", "a.b+c")
	require.NoError(t, err)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "a.b+c", u.Query().Get("token"))
	assert.Equal(t, "ja", u.Query().Get("lang"))

	assert.Contains(t, textBody, link)
	assert.Contains(t, textBody, "one hour")
	assert.Contains(t, htmlBody, "<a href=")
	assert.Contains(t, htmlBody, "one hour")
}

func TestRenderReset_InvalidBase(t *testing.T) {
	t.Parallel()

	_, _, err := renderReset("://bad", "token")
	assert.Error(t, err)
}

func TestSMTPMailer_SendPasswordReset(t *testing.T) {
	t.Parallel()

	fake := &fakeSender{}
	m := newSMTPMailer(fake, testConfig())

	require.NoError(t, m.SendPasswordReset(context.Background(), "owner@example.com", "reset-token"))
	require.Len(t, fake.sent, 1)

	msg := fake.sent[0]
	assert.Equal(t, []string{"<owner@example.com>"}, msg.GetToString())
	assert.Equal(t, []string{resetSubject}, msg.GetGenHeader(gomail.HeaderSubject))
}

// TestSMTPMailer_DeliveryFailed は送信失敗がErrDeliveryFailedとして返されることを検証します。
func TestSMTPMailer_DeliveryFailed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		to   string
		err  error
	}{
		{"smtp error", testConfig(), "owner@example.com", errors.New("421 service not available")},
		{"invalid recipient", testConfig(), "not an address", nil},
		{"invalid url base", Config{From: "no-reply@petcare.local", ResetURLBase: "://bad"}, "owner@example.com", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeSender{err: tt.err}
			m := newSMTPMailer(fake, tt.cfg)

			err := m.SendPasswordReset(context.Background(), tt.to, "reset-token")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrDeliveryFailed)
			assert.False(t, strings.Contains(err.Error(), "reset-token"), "token must not leak into errors")
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestNewSMTPMailer(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Username = "user"
	cfg.Password = "pass"
	m, err := NewSMTPMailer(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.From, m.from)
}

func TestLogMailer(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewLogMailer().SendPasswordReset(context.Background(), "owner@example.com", "reset-token"))
}

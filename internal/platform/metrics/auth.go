// Package metrics は認証まわりのPrometheusメトリクスを提供します。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Auth は認証関連のカウンタをまとめたものです。
// nilレシーバーでも呼び出せるため、メトリクスを無効にしたい場合はnilを渡せます。
type Auth struct {
	loginAttempts  *prometheus.CounterVec
	gateRejections *prometheus.CounterVec
	resetRequests  *prometheus.CounterVec
}

// NewAuth は指定されたレジストリにカウンタを登録します。
// regがnilの場合はprometheus.DefaultRegistererを使用します。
func NewAuth(reg prometheus.Registerer) *Auth {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Auth{
		// loginAttempts counts logins by result (success, invalid_credentials, error).
		loginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "petcare_login_attempts_total",
			Help: "Total number of login attempts by result",
		}, []string{"result"}),

		// gateRejections counts requests refused by the auth middleware.
		gateRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "petcare_auth_gate_rejections_total",
			Help: "Total number of requests rejected by the authentication gate",
		}, []string{"reason"}),

		resetRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "petcare_password_reset_requests_total",
			Help: "Total number of password reset requests by result",
		}, []string{"result"}),
	}
}

// LoginAttempt はログイン試行を記録します。
func (a *Auth) LoginAttempt(result string) {
	if a == nil {
		return
	}
	a.loginAttempts.WithLabelValues(result).Inc()
}

// GateRejected は認証ミドルウェアによる拒否を記録します。
func (a *Auth) GateRejected(reason string) {
	if a == nil {
		return
	}
	a.gateRejections.WithLabelValues(reason).Inc()
}

// PasswordResetRequested はパスワードリセット要求を記録します。
func (a *Auth) PasswordResetRequested(result string) {
	if a == nil {
		return
	}
	a.resetRequests.WithLabelValues(result).Inc()
}

package usecase

import (
	"fmt"
	"unicode"

	"petcare_backend/internal/feature/auth/domain"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
// 8文字以上で、英大文字・数字・ASCII記号をそれぞれ1文字以上含む必要があります。
// 新規登録とパスワード再設定にのみ適用し、ログインには適用しません。
func validatePassword(password string) error {
	var length int
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		length++
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case r < unicode.MaxASCII && (unicode.IsPunct(r) || unicode.IsSymbol(r)):
			hasSymbol = true
		}
	}

	if length < minPasswordLength {
		return fmt.Errorf("%w: at least %d characters required", domain.ErrWeakPassword, minPasswordLength)
	}
	if !hasUpper || !hasDigit || !hasSymbol {
		return domain.ErrWeakPassword
	}
	return nil
}

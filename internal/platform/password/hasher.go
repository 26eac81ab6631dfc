// Package password はbcryptによるパスワードのハッシュ化と検証を提供します。
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"petcare_backend/internal/feature/auth/domain"
)

// maxPasswordBytes はbcryptが扱える入力の最大バイト数です。
const maxPasswordBytes = 72

// BcryptHasher はbcryptを使ったパスワードハッシャーです。
// ハッシュ文字列にはコストとソルトが埋め込まれるため、検証時に追加の状態は不要です。
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher は指定されたコストでBcryptHasherを生成します。
// 範囲外のコストが渡された場合はbcrypt.DefaultCostを使用します。
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost は使用しているbcryptコストを返します。
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash は平文パスワードをランダムソルト付きでハッシュ化します。
// 空文字列や72バイトを超える入力はdomain.ErrInvalidArgumentを返します。
func (h *BcryptHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("%w: password must not be empty", domain.ErrInvalidArgument)
	}
	if len(plain) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password must not exceed %d bytes", domain.ErrInvalidArgument, maxPasswordBytes)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify は平文パスワードが保存済みハッシュと一致するかを判定します。
// 比較はbcrypt内部で定数時間で行われます。
// 不正な形式のハッシュは(false, nil)、空の引数はdomain.ErrInvalidArgumentを返します。
func (h *BcryptHasher) Verify(plain, hash string) (bool, error) {
	if plain == "" || hash == "" {
		return false, fmt.Errorf("%w: password and hash must not be empty", domain.ErrInvalidArgument)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		// ErrMismatchedHashAndPassword の他、ErrHashTooShort や InvalidHashPrefixError もここに来る
		return false, nil
	}
	return true, nil
}

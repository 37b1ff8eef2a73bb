package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost 是 bcrypt 的工作因子，固定不允许调用方修改
const PasswordCost = 12

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: PasswordCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare 在密码匹配时返回 nil，不匹配时返回 bcrypt.ErrMismatchedHashAndPassword
func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

package authsvc

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword băm mật khẩu với cost BCRYPT_SALT_ROUNDS, cost ngoài khoảng hợp lệ dùng mặc định
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword so khớp mật khẩu với hash, hash rỗng luôn sai
func VerifyPassword(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

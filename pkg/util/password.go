package util

import (
	"golang.org/x/crypto/bcrypt"
)

// EncodePassword hashes a plaintext password with bcrypt.
// EncodePassword 使用 bcrypt 对明文密码进行散列
func EncodePassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against its bcrypt hash.
// VerifyPassword 校验明文密码与散列是否匹配
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

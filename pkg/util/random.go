package util

import (
	"crypto/rand"
	"math/big"
)

const randomChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GetRandomString returns a random string of length n.
// GetRandomString 生成长度为 n 的随机字符串
func GetRandomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(randomChars)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = randomChars[0]
			continue
		}
		b[i] = randomChars[idx.Int64()]
	}
	return string(b)
}

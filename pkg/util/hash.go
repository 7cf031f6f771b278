package util

import (
	"crypto/md5"
	"encoding/hex"
)

// EncodeMD5 returns the hex MD5 digest of value. Used for content
// fingerprints, not for anything security sensitive.
// EncodeMD5 返回十六进制 MD5 摘要，仅用于内容指纹
func EncodeMD5(value string) string {
	m := md5.New()
	m.Write([]byte(value))
	return hex.EncodeToString(m.Sum(nil))
}

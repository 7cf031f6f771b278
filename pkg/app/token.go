package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/quillnotes/quill-notes-service/pkg/util"
)

// Context key the auth middleware stores the parsed user under.
// 认证中间件存放已解析用户的上下文键
const UserTokenKey = "user_token"

// TokenConfig 令牌配置
type TokenConfig struct {
	// SecretKey 签名密钥，实际密钥会追加机器标识加盐
	SecretKey string
	// Expire 令牌有效期
	Expire time.Duration
}

// UserEntity 令牌中携带的用户信息
type UserEntity struct {
	UID   int64  `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and parses user auth tokens.
// TokenManager 负责签发与解析用户令牌
type TokenManager interface {
	Generate(uid int64, email string) (string, error)
	Parse(token string) (*UserEntity, error)
}

type tokenManager struct {
	secret []byte
	expire time.Duration
}

var _ TokenManager = (*tokenManager)(nil)

// NewTokenManager creates a HS256 token manager. The configured secret is
// salted with the host machine id so a leaked config alone cannot forge
// tokens on another host.
// NewTokenManager 创建 HS256 令牌管理器，密钥追加机器标识加盐
func NewTokenManager(cfg TokenConfig) TokenManager {
	return &tokenManager{
		secret: []byte(cfg.SecretKey + "_" + util.GetMachineID()),
		expire: cfg.Expire,
	}
}

func (m *tokenManager) Generate(uid int64, email string) (string, error) {
	now := time.Now()
	claims := &UserEntity{
		UID:   uid,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expire)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *tokenManager) Parse(token string) (*UserEntity, error) {
	parsed, err := jwt.ParseWithClaims(token, &UserEntity{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*UserEntity)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// GetUser returns the authenticated user from the gin context, nil when
// the request is unauthenticated.
func GetUser(c *gin.Context) *UserEntity {
	v, ok := c.Get(UserTokenKey)
	if !ok {
		return nil
	}
	user, ok := v.(*UserEntity)
	if !ok {
		return nil
	}
	return user
}

// GetUID 获取当前请求用户的 UID，未认证时返回 0
func GetUID(c *gin.Context) int64 {
	if user := GetUser(c); user != nil {
		return user.UID
	}
	return 0
}

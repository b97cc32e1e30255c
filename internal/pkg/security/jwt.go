package security

import (
	"Atelier/internal/api/config"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultUserExpireHours  = 24 * 30
	defaultAdminExpireHours = 24
)

func secret() []byte {
	return []byte(config.Cfg.JWT.Secret)
}

// GenerateUserToken 签发普通会话 Token（默认 30 天）
func GenerateUserToken(userID, email, name string) (string, error) {
	hours := config.Cfg.JWT.UserExpireHours
	if hours <= 0 {
		hours = defaultUserExpireHours
	}
	return generate(userID, email, name, "", time.Duration(hours)*time.Hour)
}

// GenerateAdminToken 签发管理员 Token（默认 24 小时），额外携带角色
func GenerateAdminToken(userID, email, name, role string) (string, error) {
	hours := config.Cfg.JWT.AdminExpireHour
	if hours <= 0 {
		hours = defaultAdminExpireHours
	}
	return generate(userID, email, name, role, time.Duration(hours)*time.Hour)
}

func generate(userID, email, name, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		UserID: userID,
		Email:  email,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "Atelier",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secret())
	if err != nil {
		return "", fmt.Errorf("签名 Token 失败: %w", err)
	}

	return tokenString, nil
}

// ValidateToken 验证 Token 字符串并解析出 Claims
func ValidateToken(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名方法: %v", token.Header["alg"])
		}
		return secret(), nil
	})

	if err != nil {
		return nil, fmt.Errorf("token 解析失败: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token 无效或已过期")
	}

	return claims, nil
}

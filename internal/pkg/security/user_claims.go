package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims 定义了我们 Token 中需要包含的业务信息。
// Role 仅出现在管理员 Token 中，普通 Token 省略该字段。
type UserClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

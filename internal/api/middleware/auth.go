package middleware

import (
	"Atelier/internal/model"
	"Atelier/internal/pkg/consts"
	"Atelier/internal/pkg/response"
	"Atelier/internal/pkg/security"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c)
		if !ok {
			return
		}

		injectIdentity(c, claims)
		c.Next()
	}
}

// AdminAuthMiddleware 在通用鉴权之上要求管理员角色
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c)
		if !ok {
			return
		}

		if claims.Role != model.RoleAdmin {
			response.Fail(c, response.Forbidden, "admin access required")
			c.Abort()
			return
		}

		injectIdentity(c, claims)
		c.Next()
	}
}

func authenticate(c *gin.Context) (*security.UserClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		response.Fail(c, response.Unauthorized, "token missing or malformed")
		c.Abort()
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := security.ValidateToken(tokenString)
	if err != nil {
		response.Fail(c, response.Unauthorized, "token invalid or expired")
		c.Abort()
		return nil, false
	}
	return claims, true
}

func injectIdentity(c *gin.Context, claims *security.UserClaims) {
	c.Set(consts.CtxUserID, claims.UserID)
	c.Set(consts.CtxUserName, claims.Name)
	c.Set(consts.CtxUserEmail, claims.Email)
	c.Set(consts.CtxUserRole, claims.Role)

	newCtx := context.WithValue(c.Request.Context(), consts.CtxUserID, claims.UserID)
	c.Request = c.Request.WithContext(newCtx)
}

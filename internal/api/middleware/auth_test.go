package middleware

import (
	"Atelier/internal/api/config"
	"Atelier/internal/pkg/consts"
	"Atelier/internal/pkg/security"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prev := config.Cfg
	config.Cfg = &config.Config{
		JWT: config.JWTConfig{Secret: "middleware-test-secret"},
	}
	t.Cleanup(func() { config.Cfg = prev })

	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(consts.CtxUserID),
			"name":    c.GetString(consts.CtxUserName),
		})
	})
	r.GET("/admin", AdminAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString(consts.CtxUserRole)})
	})
	return r
}

func doRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingOrMalformedHeader(t *testing.T) {
	r := setupAuthRouter(t)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/me", "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/me", "Bearer garbage").Code)
}

func TestAuthMiddlewareInjectsIdentity(t *testing.T) {
	r := setupAuthRouter(t)

	token, err := security.GenerateUserToken("68b1f000000000000000000a", "alice@example.com", "alice")
	require.NoError(t, err)

	w := doRequest(r, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "68b1f000000000000000000a")
	assert.Contains(t, w.Body.String(), "alice")
}

func TestAdminAuthMiddlewareRequiresAdminRole(t *testing.T) {
	r := setupAuthRouter(t)

	userToken, err := security.GenerateUserToken("68b1f000000000000000000a", "alice@example.com", "alice")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(r, "/admin", "Bearer "+userToken).Code)

	adminToken, err := security.GenerateAdminToken("68b1f000000000000000000b", "root@example.com", "root", "admin")
	require.NoError(t, err)

	w := doRequest(r, "/admin", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

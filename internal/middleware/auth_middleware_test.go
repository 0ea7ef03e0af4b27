package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eokonkwo/campuscore/internal/app/models"
	"github.com/eokonkwo/campuscore/internal/pkg/auth"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "campuscore.edu",
	})
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	protected := router.Group("/", m.JWTAuth())
	protected.GET("/me", func(c *gin.Context) {
		userID, _ := CurrentUserID(c)
		role, _ := CurrentRole(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role})
	})
	protected.GET("/admin", m.RoleRequired(string(models.RoleAdmin)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	protected.GET("/grading", m.RoleRequired(string(models.RoleAdmin), string(models.RoleStaff)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, jwtService
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, role models.RoleType) string {
	t.Helper()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:       1,
		Email:    "user@campuscore.edu",
		RoleType: role,
	})
	require.NoError(t, err)
	return accessToken
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	router, jwtService := newAuthTestRouter(t)

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(router, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(router, "/me", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token populates identity", func(t *testing.T) {
		w := doRequest(router, "/me", tokenFor(t, jwtService, models.RoleStaff))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userId":1`)
		assert.Contains(t, w.Body.String(), `"role":"STAFF"`)
	})
}

func TestRoleRequired(t *testing.T) {
	router, jwtService := newAuthTestRouter(t)

	t.Run("admin passes admin gate", func(t *testing.T) {
		w := doRequest(router, "/admin", tokenFor(t, jwtService, models.RoleAdmin))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("student refused at admin gate", func(t *testing.T) {
		w := doRequest(router, "/admin", tokenFor(t, jwtService, models.RoleStudent))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("any-of gate admits staff", func(t *testing.T) {
		w := doRequest(router, "/grading", tokenFor(t, jwtService, models.RoleStaff))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("any-of gate refuses students", func(t *testing.T) {
		w := doRequest(router, "/grading", tokenFor(t, jwtService, models.RoleStudent))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signed(t *testing.T, role string, expiresIn time.Duration, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 7,
		Email:  "agente@fintera.test",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetUserRole(c)})
	})
	r.GET("/admin", Auth(testSecret), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuth(t *testing.T) {
	router := newAuthRouter()

	tests := []struct {
		name   string
		path   string
		header string
		query  string
		want   int
	}{
		{"missing header", "/me", "", "", http.StatusUnauthorized},
		{"malformed header", "/me", "Token abc", "", http.StatusUnauthorized},
		{"valid bearer", "/me", "Bearer " + signed(t, models.RoleAgent, time.Hour, testSecret), "", http.StatusOK},
		{"query token", "/me", "", signed(t, models.RoleAgent, time.Hour, testSecret), http.StatusOK},
		{"expired", "/me", "Bearer " + signed(t, models.RoleAgent, -time.Minute, testSecret), "", http.StatusUnauthorized},
		{"wrong secret", "/me", "Bearer " + signed(t, models.RoleAgent, time.Hour, "other"), "", http.StatusUnauthorized},
		{"agent on admin route", "/admin", "Bearer " + signed(t, models.RoleAgent, time.Hour, testSecret), "", http.StatusForbidden},
		{"admin on admin route", "/admin", "Bearer " + signed(t, models.RoleAdmin, time.Hour, testSecret), "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if tt.query != "" {
				path += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequestLoggerKeepsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

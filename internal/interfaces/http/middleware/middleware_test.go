package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procureflow/procureflow/internal/domain/user"
	"github.com/procureflow/procureflow/internal/infrastructure/auth"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type actorEcho struct {
	UserID uint      `json:"user_id"`
	Role   user.Role `json:"role"`
}

func newEngine(jwt *auth.JWTService, stream bool, extra ...gin.HandlerFunc) *gin.Engine {
	m := NewAuthMiddleware(jwt, logger.NewNopLogger())
	guard := m.RequireAuth()
	if stream {
		guard = m.RequireStreamAuth()
	}

	engine := gin.New()
	handlers := append([]gin.HandlerFunc{guard}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, role, err := CurrentActor(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, actorEcho{UserID: id, Role: role})
	})
	engine.GET("/probe", handlers...)
	return engine
}

func TestRequireAuth(t *testing.T) {
	jwt := auth.NewJWTService("secret", 15, 1)
	pair, err := jwt.Generate(7, user.RoleReviewer)
	require.NoError(t, err)

	tests := []struct {
		name   string
		stream bool
		header string
		query  string
		status int
	}{
		{name: "bearer header", header: "Bearer " + pair.AccessToken, status: http.StatusOK},
		{name: "missing token", status: http.StatusUnauthorized},
		{name: "malformed header", header: "Token " + pair.AccessToken, status: http.StatusUnauthorized},
		{name: "refresh token rejected", header: "Bearer " + pair.RefreshToken, status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", status: http.StatusUnauthorized},
		{name: "query token ignored on api routes", query: pair.AccessToken, status: http.StatusUnauthorized},
		{name: "query token on stream routes", stream: true, query: pair.AccessToken, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newEngine(jwt, tt.stream)
			target := "/probe"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user_id":7,"role":"REVIEWER"}`, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	jwt := auth.NewJWTService("secret", 15, 1)
	engine := newEngine(jwt, false, RequireAdmin())

	for role, want := range map[user.Role]int{
		user.RoleAdmin:     http.StatusOK,
		user.RolePurchaser: http.StatusForbidden,
		user.RoleManager:   http.StatusForbidden,
	} {
		pair, err := jwt.Generate(1, role)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, string(role))
	}
}

func TestRateLimiterWithoutRedisPassesThrough(t *testing.T) {
	rl := NewRateLimiter(nil, "login", 1, time.Minute, logger.NewNopLogger())
	engine := gin.New()
	engine.GET("/login", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRecoveryReturnsEnvelope(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(logger.NewNopLogger()))
	engine.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"literary_voice/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "jwt-secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/keyed", APIKeyMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(APIKeyContextKey))
	})
	r.GET("/admin", JWTAuthMiddleware(testSecret), AdminOnlyMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/role-less", AdminOnlyMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func serve(r *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPIKeyMiddleware(t *testing.T) {
	r := newRouter()

	w := serve(r, "/keyed", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"API key required"}`, w.Body.String())

	w = serve(r, "/keyed", map[string]string{APIKeyHeader: "   "})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, "/keyed", map[string]string{APIKeyHeader: " abc "})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", w.Body.String())
}

func TestAdminChain(t *testing.T) {
	r := newRouter()

	admin, err := utils.GenerateJWT(utils.RoleAdmin, testSecret, time.Minute)
	require.NoError(t, err)
	reader, err := utils.GenerateJWT("reader", testSecret, time.Minute)
	require.NoError(t, err)
	expired, err := utils.GenerateJWT(utils.RoleAdmin, testSecret, -time.Minute)
	require.NoError(t, err)
	foreign, err := utils.GenerateJWT(utils.RoleAdmin, "other-secret", time.Minute)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		header   string
		expected int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Token " + admin, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"not admin", "Bearer " + reader, http.StatusForbidden},
		{"admin", "Bearer " + admin, http.StatusNoContent},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			headers := map[string]string{}
			if tc.header != "" {
				headers["Authorization"] = tc.header
			}
			assert.Equal(t, tc.expected, serve(r, "/admin", headers).Code)
		})
	}
}

func TestAdminOnlyWithoutRole(t *testing.T) {
	w := serve(newRouter(), "/role-less", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	token, ok = bearerToken("bearer  abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	for _, h := range []string{"", "Bearer", "Bearer   ", "Basic abc", "abc"} {
		_, ok = bearerToken(h)
		assert.False(t, ok, h)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"beautyboosters/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter() *gin.Engine {
	r := gin.New()
	r.GET("/admin", JWTAuthMiddleware(secret, utils.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(ContextUserID), "role": c.GetString(ContextRole)})
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	adminToken, err := utils.GenerateToken(secret, "u1", utils.RoleAdmin, time.Hour)
	require.NoError(t, err)
	boosterToken, err := utils.GenerateToken(secret, "u2", utils.RoleBooster, time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		target string
		header string
		want   int
	}{
		{"no token", "/admin", "", http.StatusUnauthorized},
		{"garbage", "/admin", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "/admin", "Bearer " + boosterToken, http.StatusForbidden},
		{"admin", "/admin", "Bearer " + adminToken, http.StatusOK},
		{"query token", "/admin?access_token=" + adminToken, "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			authRouter().ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestCartSessionMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/s", CartSessionMiddleware(false), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextSessionID))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/s", nil))
	minted := w.Body.String()
	assert.Len(t, minted, 36)
	assert.Equal(t, minted, w.Header().Get(SessionHeader))
	assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookie+"="+minted)

	req := httptest.NewRequest(http.MethodGet, "/s", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: minted})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, minted, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/s", nil)
	req.Header.Set(SessionHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Body.String())
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "192.0.2.7:51234", "192.0.2.7"},
		{"forwarded list", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "10.0.0.1:80", "203.0.113.5"},
		{"cloudflare first", map[string]string{"CF-Connecting-IP": "198.51.100.9", "X-Forwarded-For": "203.0.113.5"}, "10.0.0.1:80", "198.51.100.9"},
		{"garbage skipped", map[string]string{"X-Forwarded-For": "unknown", "X-Real-IP": "198.51.100.1"}, "10.0.0.1:80", "198.51.100.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = req
			assert.Equal(t, tc.want, getClientIP(c))
		})
	}
}

func TestVisitorStoreForgetsIdleClients(t *testing.T) {
	now := time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)
	s := newVisitorStore(1)
	s.now = func() time.Time { return now }
	s.lastSweep = now

	require.True(t, s.limiterFor("10.0.0.1").Allow())
	assert.False(t, s.limiterFor("10.0.0.1").Allow())

	now = now.Add(visitorIdleAfter + time.Second)
	s.limiterFor("10.0.0.2")
	assert.NotContains(t, s.visitors, "10.0.0.1")
	assert.Contains(t, s.visitors, "10.0.0.2")
}

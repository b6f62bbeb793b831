package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kanban_backend/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) }

func do(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRedisLimiter_BlocksOverLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	r := gin.New()
	r.GET("/test", NewRedisLimiter(client).Limit("api", 2, time.Minute), okHandler)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/test", nil).Code)
	}
	w := do(r, http.MethodGet, "/test", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	ttl := mr.TTL("rl:api:60:ip192.0.2.1")
	assert.Equal(t, time.Minute, ttl)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/test", nil).Code)
}

func TestRedisLimiter_FailsOpen(t *testing.T) {
	r := gin.New()
	r.GET("/nil", NewRedisLimiter(nil).Limit("api", 0, time.Minute), okHandler)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/nil", nil).Code)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	r.GET("/down", NewRedisLimiter(client).Limit("api", 0, time.Minute), okHandler)
	w := do(r, http.MethodGet, "/down", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "redis-error", w.Header().Get("X-RateLimit-Error"))
}

func TestRedisLimiter_KeysByUser(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	r := gin.New()
	r.GET("/test", func(c *gin.Context) {
		c.Set(UserIDKey, int64(c.GetHeader("X-User")[0]-'0'))
	}, NewRedisLimiter(client).Limit("api", 1, time.Minute), okHandler)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/test", map[string]string{"X-User": "1"}).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/test", map[string]string{"X-User": "2"}).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/test", map[string]string{"X-User": "1"}).Code)
	assert.True(t, mr.Exists("rl:api:60:u1"))
}

func TestMemoryLimiter(t *testing.T) {
	l := NewMemoryLimiter()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	r := gin.New()
	r.GET("/test", l.Limit("auth", 2, time.Minute), okHandler)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/test", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/test", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/test", nil).Code)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/test", nil).Code)

	now = now.Add(time.Hour)
	l.Sweep(time.Minute)
	assert.Empty(t, l.clients)
}

func TestJWT(t *testing.T) {
	require.NoError(t, service.InitJWT("mw-secret"))
	token, err := service.GenerateJWT(11)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", JWT(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64(UserIDKey)})
	})

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer nope"}).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Basic " + token}).Code)

	w := do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":11}`, w.Body.String())

	w = do(r, http.MethodGet, "/me", map[string]string{"Cookie": "token=" + token})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCSRF(t *testing.T) {
	csrf := service.NewCSRF("csrf-secret")
	r := gin.New()
	withUser := func(c *gin.Context) { c.Set(UserIDKey, int64(4)) }
	r.GET("/x", withUser, CSRF(csrf), okHandler)
	r.POST("/x", withUser, CSRF(csrf), okHandler)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", nil).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/x", nil).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/x", map[string]string{CSRFHeader: csrf.Issue(5)}).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/x", map[string]string{CSRFHeader: csrf.Issue(4)}).Code)

	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(CSRFField+"="+csrf.Issue(4)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), AccessLog())
	r.GET("/x", okHandler)

	w := do(r, http.MethodGet, "/x", nil)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	w = do(r, http.MethodGet, "/x", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestMetrics_CountsRoute(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/metrics-route/:id", okHandler)

	counter := HTTPRequests.WithLabelValues("/metrics-route/:id", http.MethodGet, "200")
	before := counterValue(t, counter)
	do(r, http.MethodGet, "/metrics-route/1", nil)
	do(r, http.MethodGet, "/metrics-route/2", nil)
	assert.Equal(t, before+2, counterValue(t, counter))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	mem "github.com/davidsodrelins/comunyCAR/pkg/memcache"
)

func newLimitedRouter(maxRequests int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := mem.NewCounters(time.Hour)

	r := gin.New()
	r.POST("/ping", RateLimit(store, "test", maxRequests, time.Minute, KeyByIP), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestRateLimitAllowsUpToMax(t *testing.T) {
	r := newLimitedRouter(3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ping", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitRejectsOverMax(t *testing.T) {
	r := newLimitedRouter(2)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ping", nil)
		r.ServeHTTP(last, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
}

func TestKeyByUserOrIPPrefersUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	c.Set("user_id", uint(42))
	assert.Equal(t, "user:42", KeyByUserOrIP(c))
}

package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	mem "github.com/davidsodrelins/comunyCAR/pkg/memcache"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

// RateLimit applies a fixed-window limit using the shared counter store.
// The name keeps separate budgets for routes sharing a key.
func RateLimit(store mem.CounterStore, name string, maxRequests int, window time.Duration, keyFn func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := name + ":" + keyFn(c)

		count, resetAt := store.Hit(key, window)
		if count > maxRequests {
			retryAfter := int(time.Until(resetAt).Seconds()) + 1
			c.Writer.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests. Try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// KeyByIP buckets requests per client address.
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByUserOrIP prefers the authenticated user id so limits follow the
// account rather than the network.
func KeyByUserOrIP(c *gin.Context) string {
	if id := CurrentUserID(c); id != 0 {
		return fmt.Sprintf("user:%d", id)
	}
	return c.ClientIP()
}

// Limits matching the product rules.
func LoginRateLimit(store mem.CounterStore) gin.HandlerFunc {
	return RateLimit(store, "login", 5, 15*time.Minute, KeyByIP)
}

func AlertRateLimit(store mem.CounterStore) gin.HandlerFunc {
	return RateLimit(store, "alerts", 10, time.Hour, KeyByUserOrIP)
}

func APIRateLimit(store mem.CounterStore) gin.HandlerFunc {
	return RateLimit(store, "api", 100, 15*time.Minute, KeyByIP)
}

func PaymentRateLimit(store mem.CounterStore) gin.HandlerFunc {
	return RateLimit(store, "payments", 5, time.Hour, KeyByUserOrIP)
}

package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type keyedLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

func newKeyedLimiter(r rate.Limit, b int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (k *keyedLimiter) get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	limiter, exists := k.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(k.r, k.b)
		k.limiters[key] = limiter
	}
	return limiter
}

// RateLimitByIP throttles unauthenticated endpoints. r is requests per
// second, b the burst size.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := newKeyedLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "too many requests from this IP"})
			return
		}
		c.Next()
	}
}

// RateLimitByUser throttles per authenticated user; unauthenticated requests
// pass through for the auth middleware to reject.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := newKeyedLimiter(r, b)
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.get(userID).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "too many requests from this user"})
			return
		}
		c.Next()
	}
}

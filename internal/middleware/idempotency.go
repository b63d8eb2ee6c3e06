package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyLockTTL   = 30 * time.Second
	idempotencyResultTTL = 24 * time.Hour
)

type replayWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *replayWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency makes POST endpoints safe to retry. The first request with a
// given Idempotency-Key takes a short Redis lock and, on success, caches the
// response body; retries replay the cached body instead of re-running the
// handler. Concurrent duplicates get 409 while the first is in flight.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		ctx := c.Request.Context()

		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			c.Header("Idempotent-Replay", "true")
			c.Data(http.StatusOK, "application/json", []byte(cached))
			c.Abort()
			return
		}

		locked, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err == nil && !locked {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "a request with this idempotency key is already being processed",
			})
			return
		}

		writer := &replayWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() >= http.StatusOK && c.Writer.Status() < http.StatusMultipleChoices {
			_ = rdb.Set(ctx, cacheKey, writer.body.String(), idempotencyResultTTL).Err()
		}
		_ = rdb.Del(ctx, lockKey).Err()
	}
}

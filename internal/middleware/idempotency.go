package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-metallurg/internal/shared/apperror"
	"go-metallurg/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	idempotencyTTL  = 24 * time.Hour
	idempotencyLock = 2 * time.Minute
)

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated Idempotency-Key on
// POST requests. A concurrent duplicate gets 409 while the first one runs.
func Idempotency(rdb *redis.Client, logger ...*zap.Logger) gin.HandlerFunc {
	l := zap.L().Named("middleware.idempotency")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("middleware.idempotency")
	}

	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), c.GetString(KeyUserID), idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached cachedResponse
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.Header("Idempotent-Replayed", "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLock).Result()
		if err != nil {
			l.Warn("idempotency lock unavailable, continuing", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, apperror.CodeConflict,
				"A request with this Idempotency-Key is still being processed", nil)
			c.Abort()
			return
		}
		defer rdb.Del(ctx, lockKey)

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}

		data, err := json.Marshal(cachedResponse{Status: status, Body: rec.buf.Bytes()})
		if err != nil {
			return
		}
		if err := rdb.Set(ctx, cacheKey, data, idempotencyTTL).Err(); err != nil {
			l.Warn("failed to store idempotent response", zap.String("key", cacheKey), zap.Error(err))
		}
	}
}

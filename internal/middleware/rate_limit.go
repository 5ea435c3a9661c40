package middleware

import (
	"go-metallurg/internal/shared/apperror"
	"go-metallurg/internal/shared/response"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type KeyRateLimiter struct {
	keys map[string]*rate.Limiter
	mu   *sync.Mutex
	r    rate.Limit // requests per second
	b    int        // burst
}

func NewKeyRateLimiter(r rate.Limit, b int) *KeyRateLimiter {
	return &KeyRateLimiter{
		keys: make(map[string]*rate.Limiter),
		mu:   &sync.Mutex{},
		r:    r,
		b:    b,
	}
}

func (l *KeyRateLimiter) GetLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.keys[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.keys[key] = limiter
	}

	return limiter
}

func tooManyRequests(c *gin.Context, message string) {
	e := apperror.TooManyRequests(message)
	response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
	c.Abort()
}

func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			tooManyRequests(c, "Too many requests from this IP")
			return
		}
		c.Next()
	}
}

// RateLimitByUser keys on the authenticated user and lets anonymous requests
// through; mount it after AuthMiddleware.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyRateLimiter(r, b)
	return func(c *gin.Context) {
		userID := c.GetString(KeyUserID)
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.GetLimiter(userID).Allow() {
			tooManyRequests(c, "Too many requests from this user")
			return
		}
		c.Next()
	}
}

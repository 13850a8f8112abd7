package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"davefit/internal/service"
)

// RateLimitMiddleware aplica un limite de ventana fija por IP de cliente.
// scope separa los contadores de distintas rutas que comparten limitador.
func RateLimitMiddleware(logger *zap.Logger, limiter service.RateLimiter, policy service.RateLimitPolicy, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		res := limiter.Check(c.Request.Context(), scope+":"+clientKey(c), policy.Limit, policy.Window)
		c.Header("X-RateLimit-Limit", strconv.Itoa(policy.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			logger.Warn("rate limited", zap.String("scope", scope), zap.String("client_ip", c.ClientIP()))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func clientKey(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

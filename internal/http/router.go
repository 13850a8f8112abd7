package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"davefit/internal/service"
)

// RouterDeps agrupa lo que necesita el router para montar rutas y middlewares.
type RouterDeps struct {
	Logger       *zap.Logger
	JWT          *service.JWTService
	Limiter      service.RateLimiter
	RoutesPolicy service.RateLimitPolicy
	CoachH       *CoachHandler
	ProfileH     *ProfileHandler
}

// NewRouter configura el router de Gin con middlewares y rutas base.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := registerValidators(); err != nil {
		logger.Warn("custom validators not registered", zap.Error(err))
	}

	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/nutrition/calculate",
		RateLimitMiddleware(logger, deps.Limiter, deps.RoutesPolicy, "preview"),
		deps.CoachH.PreviewNutrition,
	)

	me := r.Group("/me")
	me.Use(JWTAuthMiddleware(deps.JWT), RateLimitMiddleware(logger, deps.Limiter, deps.RoutesPolicy, "routes"))
	me.GET("/nutrition", deps.CoachH.GetNutrition)
	me.GET("/recommendations", deps.CoachH.GetRecommendations)
	me.POST("/workouts", deps.CoachH.LogWorkout)
	me.GET("/profile", deps.ProfileH.GetProfile)
	me.PUT("/profile", deps.ProfileH.UpdateProfile)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

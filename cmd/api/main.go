package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"davefit/internal/config"
	"davefit/internal/db"
	apihttp "davefit/internal/http"
	"davefit/internal/repository"
	"davefit/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	profileRepo := repository.NewPgProfileRepository(pool)
	routineRepo := repository.NewPgRoutineRepository(pool)
	workoutRepo := repository.NewPgWorkoutRepository(pool)

	// Sin Redis el limite queda por instancia; con Redis se comparte entre replicas.
	var limiter service.RateLimiter = service.NewFixedWindowLimiter()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory rate limiter", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(redisClient, logger)
		}
		cancel()
	}

	routesPolicy := service.RateLimitPolicy{Limit: cfg.RateLimitDefault, Window: cfg.RateLimitWindow}
	profilePolicy := service.RateLimitPolicy{Limit: cfg.RateLimitProfile, Window: cfg.RateLimitWindow}

	jwtSvc := service.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		cfg.JWTIssuer,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	coachSvc := service.NewCoachService(logger, profileRepo, routineRepo, workoutRepo, service.CoachOptions{
		HistoryWindow: cfg.HistoryWindow,
		CatalogLimit:  cfg.CatalogLimit,
	})
	profileSvc := service.NewProfileService(logger, profileRepo, limiter, profilePolicy)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Logger:       logger,
		JWT:          jwtSvc,
		Limiter:      limiter,
		RoutesPolicy: routesPolicy,
		CoachH:       apihttp.NewCoachHandler(logger, coachSvc),
		ProfileH:     apihttp.NewProfileHandler(logger, profileSvc),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

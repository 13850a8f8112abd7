package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"davefit/internal/domain"
)

const unknownClientKey = "unknown"

// RateLimiter limita solicitudes por clave con ventanas fijas.
// Nunca devuelve error: ante fallas internas deja pasar la solicitud.
type RateLimiter interface {
	Check(ctx context.Context, key string, limit int, window time.Duration) domain.RateLimitResult
}

// RateLimitPolicy es un par limite/ventana configurable por ruta.
type RateLimitPolicy struct {
	Limit  int
	Window time.Duration
}

// Politicas observadas: 50/min generico y 10/min para actualizar perfil.
var (
	DefaultRateLimitPolicy       = RateLimitPolicy{Limit: 50, Window: time.Minute}
	ProfileUpdateRateLimitPolicy = RateLimitPolicy{Limit: 10, Window: time.Minute}
)

// FixedWindowLimiter es la tabla de contadores en memoria del proceso.
// No comparte estado entre procesos; para varias instancias usar RedisRateLimiter.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	now     func() time.Time
	records map[string]*domain.RateLimitRecord
}

// NewFixedWindowLimiter crea un store independiente; cada test puede tener el suyo.
func NewFixedWindowLimiter() *FixedWindowLimiter {
	return NewFixedWindowLimiterWithClock(nil)
}

func NewFixedWindowLimiterWithClock(now func() time.Time) *FixedWindowLimiter {
	if now == nil {
		now = time.Now
	}
	return &FixedWindowLimiter{
		now:     now,
		records: make(map[string]*domain.RateLimitRecord),
	}
}

func (l *FixedWindowLimiter) Check(_ context.Context, key string, limit int, window time.Duration) domain.RateLimitResult {
	limit, window = sanitizePolicy(limit, window)
	key = normalizeLimiterKey(key)

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	record, ok := l.records[key]
	if !ok {
		l.records[key] = &domain.RateLimitRecord{Count: 1, ResetAt: now.Add(window)}
		return domain.RateLimitResult{Allowed: true, Remaining: limit - 1}
	}

	if now.After(record.ResetAt) {
		record.Count = 1
		record.ResetAt = now.Add(window)
		return domain.RateLimitResult{Allowed: true, Remaining: limit - 1}
	}

	if record.Count >= limit {
		return domain.RateLimitResult{Allowed: false, Remaining: 0}
	}

	record.Count++
	return domain.RateLimitResult{Allowed: true, Remaining: limit - record.Count}
}

func sanitizePolicy(limit int, window time.Duration) (int, time.Duration) {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return limit, window
}

func normalizeLimiterKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return unknownClientKey
	}
	return key
}

package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort            string        `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL         string        `env:"DATABASE_URL,required,notEmpty"`
	JWTSecret           string        `env:"JWT_SECRET"`
	JWTIssuer           string        `env:"JWT_ISSUER"`
	JWTAccessTTLMinutes int           `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`
	RedisAddr           string        `env:"REDIS_ADDR"`
	RedisPassword       string        `env:"REDIS_PASSWORD"`
	RedisDB             int           `env:"REDIS_DB" envDefault:"0"`
	RateLimitDefault    int           `env:"RATE_LIMIT_DEFAULT" envDefault:"50"`
	RateLimitProfile    int           `env:"RATE_LIMIT_PROFILE" envDefault:"10"`
	RateLimitWindow     time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`
	HistoryWindow       int           `env:"HISTORY_WINDOW" envDefault:"10"`
	CatalogLimit        int           `env:"CATALOG_LIMIT" envDefault:"100"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

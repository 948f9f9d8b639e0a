package app

import (
	"time"

	"github.com/okulpusula/pusula-backend/internal/pkg/envutil"
)

type Config struct {
	Environment string
	Version     string

	HTTPAddr string

	AccessTokenTTL time.Duration
}

func LoadConfig() Config {
	return Config{
		Environment:    envutil.String("APP_ENV", "development"),
		Version:        envutil.String("APP_VERSION", "dev"),
		HTTPAddr:       envutil.String("HTTP_ADDR", ":8080"),
		AccessTokenTTL: time.Duration(envutil.Int("JWT_TTL_HOURS", 24)) * time.Hour,
	}
}

package configs

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	JWTSecret string
	AppEnv    string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv(log *zap.Logger) {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Info("no .env file found, using system environment")
		} else {
			log.Info(".env file loaded")
		}
	} else {
		log.Info("running on Railway, using system environment")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	AppEnv = GetEnv("APP_ENV", "dev")

	if JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	JWTSecret       string
	JWTExpiresHours int
	CORSOrigin      string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[ENV] no .env file, using system env")
		}
	}

	JWTSecret = GetEnv("JWT_SECRET")
	CORSOrigin = GetEnv("CORS_ORIGIN", "http://localhost:5173")
	JWTExpiresHours = GetEnvInt("JWT_EXPIRES_HOURS", 24*7)

	if JWTSecret == "" {
		log.Println("[ENV] JWT_SECRET is not set!")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

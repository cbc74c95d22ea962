package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr     string
	GinMode     string
	LogLevel    string
	DBHost      string
	DBUser      string
	DBPass      string
	DBName      string
	DBTimeout   time.Duration
	CORSOrigins []string
	JWTSecret   string
}

func LoadEnv() Env {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	return Env{
		AppAddr:     getEnv("APP_ADDR", ":8080"),
		GinMode:     strings.TrimSpace(os.Getenv("GIN_MODE")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DBHost:      getEnv("DB_HOST", "127.0.0.1:3306"),
		DBUser:      getEnv("DB_USER", "root"),
		DBPass:      strings.TrimSpace(os.Getenv("DB_PASS")),
		DBName:      getEnv("DB_NAME", "smart_cab_db"),
		DBTimeout:   getEnvDuration("DB_TIMEOUT_SECONDS", 5*time.Second),
		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")),
		JWTSecret:   getEnv("JWT_SECRET", "super-secret-key-change-me"),
	}
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, loaded once at startup.
type Config struct {
	Port         string
	MongoURI     string
	DBName       string
	JWTSecret    string
	TokenExpiry  int // hours
	FrontendURL  string
	AnnounceSpec string // cron spec for the publish announcer
}

// LoadConfig reads settings from .env (if present) and the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	expiry := 72
	if v := os.Getenv("TOKEN_EXPIRY_HOURS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			expiry = parsed
		}
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:       getEnv("DB_NAME", "office_board"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		TokenExpiry:  expiry,
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
		AnnounceSpec: getEnv("ANNOUNCE_CRON", "@every 1m"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string
	JWTSecret       string
	ListenAddr      string
	MetricsUser     string
	MetricsPassword string
	MediaDir        string
	AllowedOrigins  string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		MetricsUser:     getEnv("METRICS_USER", "metrics"),
		MetricsPassword: os.Getenv("METRICS_PASSWORD"),
		MediaDir:        getEnv("MEDIA_DIR", "./media"),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

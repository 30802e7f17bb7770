package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config reads a variable from the environment, loading .env first if present.
func Config(key string) string {
	godotenv.Load(".env")
	return os.Getenv(key)
}

func ConfigOr(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}

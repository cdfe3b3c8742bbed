package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config reads an env var, loading .env first if present.
func Config(key string) string {
	_ = godotenv.Load(".env")
	return os.Getenv(key)
}

// ConfigInt reads an env var as an int, falling back when unset or invalid.
func ConfigInt(key string, fallback int) int {
	v := Config(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

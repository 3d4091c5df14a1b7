// Package config loads process configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config is the process-level configuration. Issuer settings live in
// the database, not here.
type Config struct {
	Addr      string
	DBPath    string
	LogLevel  string
	LogFormat string
	Debug     bool
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:      getenv("ADDR", ":8000"),
		DBPath:    getenv("DB_PATH", "invoices.db"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "console"),
		Debug:     os.Getenv("DEBUG") == "1",
	}
}

package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        int
	DatabaseURL string
	TMDBAPIKey  string
	OMDBAPIKey  string
	JWTSecret   string
}

// Load reads configuration from the environment. TMDB_API_KEY is optional;
// without it enrichment falls back to OMDb alone. OMDB_API_KEY defaults to
// the public demo key.
func Load() *Config {
	return &Config{
		Port:        envInt("PORT", 5000),
		DatabaseURL: env("DATABASE_URL", "postgres://postgres:postgres@db:5432/moviedb?sslmode=disable"),
		TMDBAPIKey:  env("TMDB_API_KEY", ""),
		OMDBAPIKey:  env("OMDB_API_KEY", "3e2ed480"),
		JWTSecret:   env("JWT_SECRET", "change-me-in-production"),
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

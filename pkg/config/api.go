package config

import "time"

// APIConfig holds runtime configuration for the chat API service.
type APIConfig struct {
	Environment         string
	Addr                string
	DatabaseURL         string
	MigrationsDir       string
	JWTSecret           string
	TokenTTL            time.Duration
	AllowedOrigin       string
	CatalogTokenURL     string
	CatalogSearchURL    string
	CatalogClientID     string
	CatalogClientSecret string
	CatalogTimeout      time.Duration
}

// LoadAPIConfig constructs an APIConfig from environment variables.
func LoadAPIConfig() APIConfig {
	return APIConfig{
		Environment:         GetString("APP_ENV", "development"),
		Addr:                GetString("API_ADDR", ":3000"),
		DatabaseURL:         GetString("DATABASE_URL", "postgres://chat:chat@db:5432/chat?sslmode=disable"),
		MigrationsDir:       GetString("DB_MIGRATIONS_DIR", "./db/migrations"),
		JWTSecret:           GetString("JWT_SECRET", "supersecuresecret"),
		TokenTTL:            time.Duration(GetInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		AllowedOrigin:       GetString("CORS_ALLOWED_ORIGIN", "*"),
		CatalogTokenURL:     GetString("SPOTIFY_TOKEN_URL", "https://accounts.spotify.com/api/token"),
		CatalogSearchURL:    GetString("SPOTIFY_SEARCH_URL", "https://api.spotify.com/v1/search"),
		CatalogClientID:     GetString("SPOTIFY_CLIENT_ID", ""),
		CatalogClientSecret: GetString("SPOTIFY_CLIENT_SECRET", ""),
		CatalogTimeout:      time.Duration(GetInt("SPOTIFY_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

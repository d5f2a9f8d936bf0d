package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
// External integrations are optional: missing Spotify or AI credentials
// degrade those features to local-only behaviour instead of failing startup.
type Config struct {
	ServerAddr string

	// Spotify catalog (client credentials flow)
	SpotifyClientID     string
	SpotifyClientSecret string

	// AI support chat (OpenAI-compatible endpoint)
	AIAPIBaseURL  string
	AIAPIKey      string
	AIModel       string
	AIMaxTokens   int
	AITemperature float64

	// Redis catalog cache (optional)
	RedisHost              string
	RedisPort              string
	RedisPassword          string
	RedisDB                int
	CatalogCacheTTLSeconds int

	// Logging
	LogLevel string
	LogPath  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvFloat gets an environment variable as float64 or returns a default value.
func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// Attempt to load .env file. godotenv.Load() will not override existing env vars.
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),

		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),

		AIAPIBaseURL:  getEnv("AI_API_BASE_URL", "https://api.openai.com/v1"),
		AIAPIKey:      os.Getenv("AI_API_KEY"),
		AIModel:       getEnv("AI_MODEL", "gpt-4o-mini"),
		AIMaxTokens:   getEnvInt("AI_MAX_TOKENS", 256),
		AITemperature: getEnvFloat("AI_TEMPERATURE", 0.7),

		RedisHost:              os.Getenv("REDIS_HOST"), // empty disables the catalog cache
		RedisPort:              getEnv("REDIS_PORT", "6379"),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RedisDB:                getEnvInt("REDIS_DB", 0),
		CatalogCacheTTLSeconds: getEnvInt("CATALOG_CACHE_TTL", 120),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", ""),
	}
}

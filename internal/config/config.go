package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type APIConfig struct {
	Addr string
	// DatabaseURL is optional; when empty the API keeps games in memory.
	DatabaseURL    string
	MistralAPIKey  string
	MistralModel   string
	DefaultPlayer  string
	RequestLogging bool
}

type CLIConfig struct {
	APIBaseURL string
}

func LoadAPIFromEnv() (APIConfig, error) {
	// A local .env is a convenience; absence is not an error.
	_ = godotenv.Load()

	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("TYCOON_API_ADDR", ":8080")
	}

	return APIConfig{
		Addr:           addr,
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		MistralAPIKey:  strings.TrimSpace(os.Getenv("MISTRAL_API_KEY")),
		MistralModel:   envDefault("TYCOON_MISTRAL_MODEL", "mistral-large-latest"),
		DefaultPlayer:  envDefault("TYCOON_DEFAULT_PLAYER", "Axel"),
		RequestLogging: envBoolDefault("TYCOON_REQUEST_LOGGING", true),
	}, nil
}

func LoadCLIFromEnv() CLIConfig {
	_ = godotenv.Load()
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("TYCOON_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "1", "t", "true", "y", "yes", "on":
		return true
	case "0", "f", "false", "n", "no", "off":
		return false
	default:
		return fallback
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	LogLevel string
	Env      string

	// Empty DatabaseURL / RedisURL run the service fully in memory.
	DatabaseURL string
	RedisURL    string

	JWTSecret string

	// Workspace keys the persisted snapshot and namespaces preference keys.
	Workspace        string
	StrictReferences bool
	SeedDemo         bool
	CORSOrigins      []string

	ManagerEmail    string
	ManagerPassword string
}

func LoadConfig() (*Config, error) {
	strict, err := GetEnvBool("STRICT_REFERENCES", false)
	if err != nil {
		return nil, err
	}
	seed, err := GetEnvBool("SEED_DEMO", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:             GetEnv("PORT", "8081"),
		DatabaseURL:      GetEnv("DATABASE_URL", ""),
		RedisURL:         GetEnv("REDIS_URL", ""),
		Env:              GetEnv("ENV", "development"),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		JWTSecret:        GetEnv("JWT_SECRET", ""),
		Workspace:        GetEnv("WORKSPACE", "default"),
		StrictReferences: strict,
		SeedDemo:         seed,
		CORSOrigins:      splitList(GetEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		ManagerEmail:     GetEnv("MANAGER_EMAIL", "admin@propmaster.local"),
		ManagerPassword:  GetEnv("MANAGER_PASSWORD", ""),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}
	if cfg.Env == "production" && cfg.ManagerPassword == "" {
		return nil, fmt.Errorf("MANAGER_PASSWORD is required in production")
	}
	if cfg.ManagerPassword == "" {
		cfg.ManagerPassword = "admin123"
	}
	return cfg, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvBool(key string, defaultValue bool) (bool, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string // empty keeps drafts in memory
	RedisURL    string // empty disables the draft cache
	CacheTTL    time.Duration

	AIProvider   string // "service" or "gemini"
	AIServiceURL string
	GeminiAPIKey string
	GeminiModel  string
	AITimeout    time.Duration

	ChromePath string
	ExportDir  string
	LogLevel   string
}

// Load reads configuration from the environment, after loading a .env file
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "3000"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RedisURL:     getEnv("REDIS_URL", ""),
		AIProvider:   strings.ToLower(getEnv("AI_PROVIDER", "service")),
		AIServiceURL: strings.TrimRight(getEnv("AI_SERVICE_URL", "http://ai-service:8000"), "/"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		ChromePath:   getEnv("CHROME_PATH", ""),
		ExportDir:    getEnv("EXPORT_DIR", "exports"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.AITimeout, err = getDuration("AI_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.AIProvider {
	case "service":
		if c.AIServiceURL == "" {
			return fmt.Errorf("config error: AI_SERVICE_URL is required for the service provider")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config error: GEMINI_API_KEY is required for the gemini provider")
		}
	default:
		return fmt.Errorf("config error: unknown AI_PROVIDER %q", c.AIProvider)
	}
	if c.ExportDir == "" {
		return fmt.Errorf("config error: EXPORT_DIR must not be empty")
	}
	return nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config error: %s: %w", key, err)
	}
	return d, nil
}

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort           = "8000"
	defaultModel          = "gemini-1.5-flash"
	defaultMaxUploadBytes = 20 << 20
	defaultMaxImagePixels = 50_000_000
)

type Config struct {
	Host string
	Port string

	// GoogleAPIKey may be empty; analysis then fails per request instead of at startup.
	GoogleAPIKey string
	GeminiModel  string

	MaxUploadBytes   int64
	MaxImagePixels   int64
	CORSAllowOrigins []string
	LogLevel         string
	TelegramBotToken string
	WebhookURL       string
}

func (c *Config) ServerAddress() string {
	return net.JoinHostPort(strings.TrimSpace(c.Host), strings.TrimSpace(c.Port))
}

// Load reads the process environment. Outside production a .env file in the
// working directory is loaded first; variables already set take precedence.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Host: getEnv("HOST", "0.0.0.0"),
		Port: getEnv("PORT", defaultPort),

		GoogleAPIKey: strings.TrimSpace(firstEnv("GOOGLE_API_KEY", "GEMINI_API_KEY")),
		GeminiModel:  getEnv("GEMINI_MODEL", defaultModel),

		MaxUploadBytes:   parseIntOrDefault("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		MaxImagePixels:   parseIntOrDefault("MAX_IMAGE_PIXELS", defaultMaxImagePixels),
		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		TelegramBotToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		WebhookURL:       strings.TrimSpace(os.Getenv("WEBHOOK_URL")),
	}

	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	return cfg, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func parseIntOrDefault(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
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

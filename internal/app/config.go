package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
)

// Config is read once at startup. Components receive what they need from
// here instead of reaching into the environment at call time.
type Config struct {
	Port          string
	PublicBaseURL string
	AllowOrigins  []string

	PDFServiceURL     string
	PDFServiceTimeout time.Duration

	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string
	GeminiTimeout time.Duration

	BotServiceURL     string
	BotAPIKey         string
	BotServiceTimeout time.Duration
	WebhookSecret     string

	StorageMode         string // gcs|memory
	TemplatesBucket     string
	GeneratedDocsBucket string
	GCSCredentialsFile  string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),

		PDFServiceURL:     getEnv("PDF_SERVICE_URL", "http://localhost:8000"),
		PDFServiceTimeout: getEnvSeconds("PDF_SERVICE_TIMEOUT_SECONDS", 120),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiTimeout: getEnvSeconds("GEMINI_TIMEOUT_SECONDS", 120),

		BotServiceURL:     os.Getenv("BOT_SERVICE_URL"),
		BotAPIKey:         os.Getenv("BOT_API_KEY"),
		BotServiceTimeout: getEnvSeconds("BOT_SERVICE_TIMEOUT_SECONDS", 60),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),

		StorageMode:         getEnv("STORAGE_MODE", "gcs"),
		TemplatesBucket:     os.Getenv("BOOKING_TEMPLATES_BUCKET"),
		GeneratedDocsBucket: os.Getenv("GENERATED_DOCS_BUCKET"),
		GCSCredentialsFile:  os.Getenv("GCS_CREDENTIALS_FILE"),
	}
	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, o)
			}
		}
	}
	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY is not set; letter generation will fail")
	}
	if cfg.BotServiceURL == "" || cfg.BotAPIKey == "" || cfg.WebhookSecret == "" {
		log.Warn("Bot service not fully configured; automation dispatch will fail closed")
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvSeconds(key string, def int) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return time.Duration(parsed) * time.Second
		}
	}
	return time.Duration(def) * time.Second
}

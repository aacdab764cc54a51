package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// insecureJWTFallback keeps the server bootable without JWT_SECRET for local
// development. Never ship it.
const insecureJWTFallback = "change_this_secret"

type Config struct {
	Port       string
	DBURL      string
	JWTSecret  string
	CORSOrigin string
	AppURL     string

	StripeSecretKey     string
	StripePriceID       string
	StripeWebhookSecret string
	// Explicit opt-in for accepting webhook events without signature
	// verification. Local testing only.
	AllowUnverifiedWebhooks bool

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPPassword string
	NotifyEmail  string

	GoogleClientID         string
	GoogleClientSecret     string
	GoogleRedirectURL      string
	GoogleFrontendRedirect string

	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		DBURL:      mustEnv("DB_URL"),
		JWTSecret:  getEnv("JWT_SECRET", ""),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
		AppURL:     getEnv("APP_URL", "http://localhost:5173"),

		StripeSecretKey:         getEnv("STRIPE_SECRET_KEY", ""),
		StripePriceID:           getEnv("STRIPE_PRICE_ID", ""),
		StripeWebhookSecret:     getEnv("STRIPE_WEBHOOK_SECRET", ""),
		AllowUnverifiedWebhooks: getEnv("ALLOW_UNVERIFIED_WEBHOOKS", "") == "true",

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@renomapro.local"),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		NotifyEmail:  getEnv("NOTIFY_EMAIL", ""),

		GoogleClientID:         getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:     getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:      getEnv("GOOGLE_REDIRECT_URL", ""),
		GoogleFrontendRedirect: getEnv("GOOGLE_FRONTEND_REDIRECT", ""),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@renomapro.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}

	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET not set, falling back to an insecure hardcoded secret. Do not run this in production.")
		cfg.JWTSecret = insecureJWTFallback
	}
	if cfg.StripeWebhookSecret == "" && cfg.AllowUnverifiedWebhooks {
		log.Println("WARNING: accepting unverified Stripe webhooks (ALLOW_UNVERIFIED_WEBHOOKS=true). Local testing only.")
	}

	return cfg
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// OCRSpaceAPIKey may be empty: a missing key is a request-time error,
	// not a startup failure.
	OCRSpaceAPIKey string
	OCRSpaceURL    string
	OCRLanguage    string
	OCREngine      string

	GeminiAPIKey string
	GeminiModel  string

	TelegramBotToken string
	WebhookURL       string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	// .env is optional, real env always wins
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8000"),

		OCRSpaceAPIKey: getEnv("OCR_SPACE_API_KEY", ""),
		OCRSpaceURL:    getEnv("OCR_SPACE_URL", "https://api.ocr.space/parse/image"),
		OCRLanguage:    getEnv("OCR_LANGUAGE", "rus"),
		OCREngine:      getEnv("OCR_ENGINE", "ocrspace"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),
	}
}

// MustTelegramBotToken is for the bot binary, which cannot run without it.
func (c *Config) MustTelegramBotToken() string {
	if c.TelegramBotToken == "" {
		return mustEnv("TELEGRAM_BOT_TOKEN")
	}
	return c.TelegramBotToken
}

// EngineAPIKey returns the secret the selected engine depends on.
func (c *Config) EngineAPIKey() string {
	if c.OCREngine == "gemini" {
		return c.GeminiAPIKey
	}
	return c.OCRSpaceAPIKey
}

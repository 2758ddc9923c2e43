package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	AuthRequired bool

	// Login rate limiting
	LoginRatePerMinute int
	LoginRateBurst     int

	// Email Configuration (low stock alerts)
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	FromEmail       string
	FromName        string
	StockAlertEmail string
}

func Load() *Config {
	// Optional .env file for local development
	_ = godotenv.Load()

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "2525"))
	ratePerMinute, _ := strconv.Atoi(getEnv("LOGIN_RATE_PER_MINUTE", "30"))
	rateBurst, _ := strconv.Atoi(getEnv("LOGIN_RATE_BURST", "10"))

	return &Config{
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/savrepa?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:    getEnv("JWT_SECRET", "your-secret-key"),
		AuthRequired: getEnv("AUTH_REQUIRED", "false") == "true",

		LoginRatePerMinute: ratePerMinute,
		LoginRateBurst:     rateBurst,

		// Email settings
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        smtpPort,
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		FromEmail:       getEnv("FROM_EMAIL", "noreply@savrepa.local"),
		FromName:        getEnv("FROM_NAME", "Sav Repa"),
		StockAlertEmail: getEnv("STOCK_ALERT_EMAIL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

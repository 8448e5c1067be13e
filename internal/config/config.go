package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int    `env:"DB_MAX_CONNS" envDefault:"10"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`

	// Redis Config
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass        string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	IncidentCacheTTL time.Duration `env:"INCIDENT_CACHE_TTL" envDefault:"5m"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// JWT Config
	JWTSecret string        `env:"JWT_SECRET"`
	JWTIssuer string        `env:"JWT_ISSUER" envDefault:"municipal-incidents"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"12h"`

	// Mail Config
	SMTPHost           string `env:"SMTP_HOST" envDefault:"localhost"`
	SMTPPort           int    `env:"SMTP_PORT" envDefault:"25"`
	SMTPUsername       string `env:"SMTP_USERNAME"`
	SMTPPassword       string `env:"SMTP_PASSWORD"`
	MailSupportAddress string `env:"MAIL_SUPPORT_ADDRESS" envDefault:"soporte@municipalidad.local"`
	MailNoReplyAddress string `env:"MAIL_NO_REPLY_ADDRESS" envDefault:"no-reply@municipalidad.local"`

	// Evidence storage
	MediaRoot        string `env:"MEDIA_ROOT" envDefault:"media"`
	MediaURL         string `env:"MEDIA_URL" envDefault:"/media/"`
	EvidenceMaxBytes int64  `env:"EVIDENCE_MAX_BYTES" envDefault:"10485760"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBMaxConns:         getEnvAsInt("DB_MAX_CONNS", 10),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		IncidentCacheTTL:   getEnvAsDuration("INCIDENT_CACHE_TTL", 5*time.Minute),
		WebhookURL:         os.Getenv("WEBHOOK_URL"),
		WebhookSecret:      os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:     getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:  getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:   getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTIssuer:          getEnv("JWT_ISSUER", "municipal-incidents"),
		JWTTTL:             getEnvAsDuration("JWT_TTL", 12*time.Hour),
		SMTPHost:           getEnv("SMTP_HOST", "localhost"),
		SMTPPort:           getEnvAsInt("SMTP_PORT", 25),
		SMTPUsername:       os.Getenv("SMTP_USERNAME"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		MailSupportAddress: getEnv("MAIL_SUPPORT_ADDRESS", "soporte@municipalidad.local"),
		MailNoReplyAddress: getEnv("MAIL_NO_REPLY_ADDRESS", "no-reply@municipalidad.local"),
		MediaRoot:          getEnv("MEDIA_ROOT", "media"),
		MediaURL:           getEnv("MEDIA_URL", "/media/"),
		EvidenceMaxBytes:   getEnvAsInt64("EVIDENCE_MAX_BYTES", 10*1024*1024),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

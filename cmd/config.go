package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"orders/internal/core/application/notifications"
)

// Config is the process configuration, read from the environment.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	NotificationTypes           []string
	NotificationEmails          []string
	NotificationPhones          []string
	NotificationTopics          []string
	NotificationQueueSize       int
	NotificationMonitorSchedule string

	KafkaBrokers []string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPTimeout  time.Duration

	JWTSecret    string
	JWTTTL       time.Duration
	AuthUsername string
	AuthPassword string
}

const (
	defaultHTTPPort        = "8080"
	defaultQueueSize       = 1024
	defaultMonitorSchedule = "@every 15s"
	defaultJWTTTL          = time.Hour
	defaultAuthUsername    = "testuser"
	defaultAuthPassword    = "testpass"
	defaultSMTPPort        = "25"
	defaultSMTPFrom        = "orders@localhost"
	defaultSMTPTimeout     = 10 * time.Second
	defaultDBHost          = "localhost"
	defaultDBPort          = "5432"
	defaultDBSslMode       = "disable"
)

var ErrJWTSecretIsRequired = errors.New("JWT_SECRET is required")

// LoadConfig builds a Config from getenv, applying defaults for unset keys.
//
// Example:
//
//	cfg, err := cmd.LoadConfig(os.Getenv)
func LoadConfig(getenv func(string) string) (Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort: env("HTTP_PORT", defaultHTTPPort),

		DBHost:     env("DB_HOST", defaultDBHost),
		DBPort:     env("DB_PORT", defaultDBPort),
		DBUser:     env("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD"),
		DBName:     env("DB_NAME", "orders"),
		DBSslMode:  env("DB_SSLMODE", defaultDBSslMode),

		NotificationTypes:           notifications.ParseList(getenv("NOTIFICATION_TYPES")),
		NotificationEmails:          notifications.ParseList(getenv("NOTIFICATION_EMAILS")),
		NotificationPhones:          notifications.ParseList(getenv("NOTIFICATION_PHONES")),
		NotificationTopics:          notifications.ParseList(getenv("NOTIFICATION_TOPICS")),
		NotificationMonitorSchedule: env("NOTIFICATION_MONITOR_SCHEDULE", defaultMonitorSchedule),

		KafkaBrokers: notifications.ParseList(getenv("KAFKA_BROKERS")),

		SMTPHost:     getenv("SMTP_HOST"),
		SMTPPort:     env("SMTP_PORT", defaultSMTPPort),
		SMTPUser:     getenv("SMTP_USER"),
		SMTPPassword: getenv("SMTP_PASSWORD"),
		SMTPFrom:     env("SMTP_FROM", defaultSMTPFrom),

		JWTSecret:    getenv("JWT_SECRET"),
		AuthUsername: env("AUTH_USERNAME", defaultAuthUsername),
		AuthPassword: env("AUTH_PASSWORD", defaultAuthPassword),
	}

	var err error
	if cfg.NotificationQueueSize, err = positiveInt(env("NOTIFICATION_QUEUE_SIZE", ""), defaultQueueSize); err != nil {
		return Config{}, fmt.Errorf("NOTIFICATION_QUEUE_SIZE: %w", err)
	}

	cfg.JWTTTL = defaultJWTTTL
	if raw := env("JWT_TTL", ""); raw != "" {
		if cfg.JWTTTL, err = time.ParseDuration(raw); err != nil {
			return Config{}, fmt.Errorf("JWT_TTL: %w", err)
		}
	}

	cfg.SMTPTimeout = defaultSMTPTimeout
	if raw := env("SMTP_TIMEOUT", ""); raw != "" {
		if cfg.SMTPTimeout, err = time.ParseDuration(raw); err != nil {
			return Config{}, fmt.Errorf("SMTP_TIMEOUT: %w", err)
		}
		if cfg.SMTPTimeout <= 0 {
			return Config{}, fmt.Errorf("SMTP_TIMEOUT: must be positive, got %s", cfg.SMTPTimeout)
		}
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrJWTSecretIsRequired
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string for GORM.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func positiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

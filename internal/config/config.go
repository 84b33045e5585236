package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// UploadConfig bounds what the upload endpoint accepts.
type UploadConfig struct {
	MaxFileMB         int
	AllowedExtensions []string
}

// MaxFileBytes returns the upload limit in bytes.
func (u UploadConfig) MaxFileBytes() int64 {
	return int64(u.MaxFileMB) * 1024 * 1024
}

// MailConfig holds the transactional email provider settings and the
// addresses used by finalization.
type MailConfig struct {
	SendGridAPIKey  string
	SendGridBaseURL string
	TimeoutSec      int

	FromEmail string
	FromName  string

	// InternalOverride is the explicit recipient for finalized requests.
	InternalOverride string
	// AdminEmail is the back-office address, used when no override is set.
	AdminEmail string
	// ContactEmail is the reply-to offered to customers.
	ContactEmail string
}

// InternalRecipient resolves who receives finalized requests:
// explicit override, then admin setting, then the default sender.
func (m MailConfig) InternalRecipient() string {
	return firstNonEmpty(m.InternalOverride, m.AdminEmail, m.FromEmail)
}

// CustomerReplyTo resolves the reply-to on customer confirmations:
// the contact address, then the internal recipient.
func (m MailConfig) CustomerReplyTo() string {
	return firstNonEmpty(m.ContactEmail, m.InternalRecipient())
}

// Timeout returns the gateway request timeout.
func (m MailConfig) Timeout() time.Duration {
	if m.TimeoutSec <= 0 {
		return 20 * time.Second
	}
	return time.Duration(m.TimeoutSec) * time.Second
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables once at startup and passed by
// reference to the components that need it.
type AppConfig struct {
	AppHost        string
	Port           string
	Timezone       string
	LogLevel       string
	PublicIDPrefix string
	Database       DatabaseConfig
	MinIO          MinIOConfig
	Upload         UploadConfig
	Mail           MailConfig
}

// Location returns the configured time zone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:        getEnv("APP_HOST", "localhost:8080"),
		Port:           getEnv("PORT", "8080"),
		Timezone:       getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		PublicIDPrefix: getEnv("PUBLIC_ID_PREFIX", "RPM-"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Upload: UploadConfig{
			MaxFileMB:         getEnvInt("UPLOAD_MAX_FILE_MB", 20),
			AllowedExtensions: getEnvList("UPLOAD_ALLOWED_EXTENSIONS", []string{"pdf", "jpg", "jpeg", "png", "webp"}),
		},
		Mail: MailConfig{
			SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
			SendGridBaseURL:  getEnv("SENDGRID_BASE_URL", "https://api.sendgrid.com"),
			TimeoutSec:       getEnvInt("SENDGRID_TIMEOUT_SEC", 20),
			FromEmail:        getEnv("DEFAULT_FROM_EMAIL", ""),
			FromName:         getEnv("DEFAULT_FROM_NAME", ""),
			InternalOverride: getEnv("CLIENT_EMAIL", ""),
			AdminEmail:       getEnv("ADMIN_EMAIL", ""),
			ContactEmail:     getEnv("CONTACT_EMAIL", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList splits a comma separated value, dropping blanks and leading dots.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(part)), ".")
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Email    EmailConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	Storage string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	MaxConns     int32
	QueryTimeout time.Duration
	Migrate      bool
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
	Issuer      string
}

type AuthConfig struct {
	RevocationEnabled bool
	PurgeInterval     time.Duration
}

type EmailConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	From      string
	Recipient string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// LoadConfig reads .env (when present) and lets real environment variables win.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.AutomaticEnv()

	config := fromViper(v)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "furniture-store")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("STORAGE", StoragePostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_QUERY_TIMEOUT", "5s")
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("JWT_ISSUER", "furniture-store")
	v.SetDefault("AUTH_REVOCATION_ENABLED", true)
	v.SetDefault("REVOCATION_PURGE_INTERVAL", "1h")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
			Storage: strings.ToLower(v.GetString("STORAGE")),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			Name:         v.GetString("DB_NAME"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASS"),
			MaxConns:     v.GetInt32("DB_MAX_CONNS"),
			QueryTimeout: v.GetDuration("DB_QUERY_TIMEOUT"),
			Migrate:      v.GetBool("DB_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
			Issuer:      v.GetString("JWT_ISSUER"),
		},
		Auth: AuthConfig{
			RevocationEnabled: v.GetBool("AUTH_REVOCATION_ENABLED"),
			PurgeInterval:     v.GetDuration("REVOCATION_PURGE_INTERVAL"),
		},
		Email: EmailConfig{
			Host:      v.GetString("SMTP_HOST"),
			Port:      v.GetInt("SMTP_PORT"),
			User:      v.GetString("SMTP_USER"),
			Password:  v.GetString("SMTP_PASS"),
			From:      v.GetString("EMAIL_FROM"),
			Recipient: v.GetString("CONTACT_RECIPIENT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be positive")
	}
	switch c.App.Storage {
	case StoragePostgres:
		if c.Database.Name == "" || c.Database.User == "" {
			return fmt.Errorf("DB_NAME and DB_USER are required for postgres storage")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE %q", c.App.Storage)
	}
	return nil
}

func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

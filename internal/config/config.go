package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	Assist  AssistConfig
	CORS    CORSConfig
	Sweeper SweeperConfig
	Invite  InviteConfig
	Email   EmailConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// InviteConfig holds team invitation settings.
type InviteConfig struct {
	ExpiryHours int `mapstructure:"expiry_hours"`
}

// Expiry returns the invite lifetime as a duration.
func (i *InviteConfig) Expiry() time.Duration {
	return time.Duration(i.ExpiryHours) * time.Hour
}

// SweeperConfig holds invite expiry sweeper settings.
type SweeperConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AssistProviderConfig holds settings for a single LLM assist provider.
type AssistProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// AssistConfig holds LLM assist settings with primary/secondary fallback.
type AssistConfig struct {
	Primary   AssistProviderConfig `mapstructure:"primary"`
	Secondary AssistProviderConfig `mapstructure:"secondary"`
}

// PrimaryConfig returns the primary assist provider config, or nil if not configured.
func (a *AssistConfig) PrimaryConfig() *AssistProviderConfig {
	if a.Primary.Provider != "" {
		return &a.Primary
	}
	return nil
}

// SecondaryConfig returns the secondary assist provider config, or nil if not configured.
func (a *AssistConfig) SecondaryConfig() *AssistProviderConfig {
	if a.Secondary.Provider != "" {
		return &a.Secondary
	}
	return nil
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the SETFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SETFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "setflow")
	v.SetDefault("db.password", "setflow_secret")
	v.SetDefault("db.name", "setflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "setflow")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "setflow-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Sweeper defaults
	v.SetDefault("sweeper.poll_interval_secs", 60)

	// Invite defaults (7 days)
	v.SetDefault("invite.expiry_hours", 168)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@setflow.app")
	v.SetDefault("email.from_name", "Setflow")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Assist defaults
	v.SetDefault("assist.primary.provider", "")
	v.SetDefault("assist.primary.api_key", "")
	v.SetDefault("assist.primary.default_model", "")
	v.SetDefault("assist.primary.max_retries", 2)
	v.SetDefault("assist.primary.timeout_secs", 60)
	v.SetDefault("assist.secondary.provider", "")
	v.SetDefault("assist.secondary.api_key", "")
	v.SetDefault("assist.secondary.default_model", "")
	v.SetDefault("assist.secondary.max_retries", 2)
	v.SetDefault("assist.secondary.timeout_secs", 60)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "SETFLOW_SERVER_PORT",
		"server.read_timeout":  "SETFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout": "SETFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":   "SETFLOW_SERVER_ENVIRONMENT",
		"db.host":              "SETFLOW_DB_HOST",
		"db.port":              "SETFLOW_DB_PORT",
		"db.user":              "SETFLOW_DB_USER",
		"db.password":          "SETFLOW_DB_PASSWORD",
		"db.name":              "SETFLOW_DB_NAME",
		"db.sslmode":           "SETFLOW_DB_SSLMODE",
		"db.max_open":          "SETFLOW_DB_MAX_OPEN",
		"db.max_idle":          "SETFLOW_DB_MAX_IDLE",
		"jwt.secret":           "SETFLOW_JWT_SECRET",
		"jwt.access_expiry":    "SETFLOW_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":   "SETFLOW_JWT_REFRESH_EXPIRY",
		"jwt.issuer":           "SETFLOW_JWT_ISSUER",
		"s3.region":            "SETFLOW_S3_REGION",
		"s3.bucket":            "SETFLOW_S3_BUCKET",
		"s3.endpoint":          "SETFLOW_S3_ENDPOINT",
		"s3.access_key":        "SETFLOW_S3_ACCESS_KEY",
		"s3.secret_key":        "SETFLOW_S3_SECRET_KEY",
		"s3.max_file_size_mb":  "SETFLOW_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":    "SETFLOW_S3_PRESIGN_EXPIRY",
		"log.level":            "SETFLOW_LOG_LEVEL",
		"log.format":           "SETFLOW_LOG_FORMAT",
		"cors.allowed_origins":           "SETFLOW_CORS_ALLOWED_ORIGINS",
		"sweeper.poll_interval_secs":     "SETFLOW_SWEEPER_POLL_INTERVAL_SECS",
		"invite.expiry_hours":            "SETFLOW_INVITE_EXPIRY_HOURS",
		"assist.primary.provider":        "SETFLOW_ASSIST_PRIMARY_PROVIDER",
		"assist.primary.api_key":         "SETFLOW_ASSIST_PRIMARY_API_KEY",
		"assist.primary.default_model":   "SETFLOW_ASSIST_PRIMARY_DEFAULT_MODEL",
		"assist.primary.max_retries":     "SETFLOW_ASSIST_PRIMARY_MAX_RETRIES",
		"assist.primary.timeout_secs":    "SETFLOW_ASSIST_PRIMARY_TIMEOUT_SECS",
		"assist.secondary.provider":      "SETFLOW_ASSIST_SECONDARY_PROVIDER",
		"assist.secondary.api_key":       "SETFLOW_ASSIST_SECONDARY_API_KEY",
		"assist.secondary.default_model": "SETFLOW_ASSIST_SECONDARY_DEFAULT_MODEL",
		"assist.secondary.max_retries":   "SETFLOW_ASSIST_SECONDARY_MAX_RETRIES",
		"assist.secondary.timeout_secs":  "SETFLOW_ASSIST_SECONDARY_TIMEOUT_SECS",
		"email.provider":                 "SETFLOW_EMAIL_PROVIDER",
		"email.region":                   "SETFLOW_EMAIL_REGION",
		"email.from_address":             "SETFLOW_EMAIL_FROM_ADDRESS",
		"email.from_name":                "SETFLOW_EMAIL_FROM_NAME",
		"email.frontend_url":             "SETFLOW_EMAIL_FRONTEND_URL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SETFLOW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SETFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Assist = AssistConfig{
		Primary: AssistProviderConfig{
			Provider:     v.GetString("assist.primary.provider"),
			APIKey:       v.GetString("assist.primary.api_key"),
			DefaultModel: v.GetString("assist.primary.default_model"),
			MaxRetries:   v.GetInt("assist.primary.max_retries"),
			TimeoutSecs:  v.GetInt("assist.primary.timeout_secs"),
		},
		Secondary: AssistProviderConfig{
			Provider:     v.GetString("assist.secondary.provider"),
			APIKey:       v.GetString("assist.secondary.api_key"),
			DefaultModel: v.GetString("assist.secondary.default_model"),
			MaxRetries:   v.GetInt("assist.secondary.max_retries"),
			TimeoutSecs:  v.GetInt("assist.secondary.timeout_secs"),
		},
	}

	cfg.Sweeper = SweeperConfig{
		PollIntervalSecs: v.GetInt("sweeper.poll_interval_secs"),
	}

	cfg.Invite = InviteConfig{
		ExpiryHours: v.GetInt("invite.expiry_hours"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	return cfg, nil
}

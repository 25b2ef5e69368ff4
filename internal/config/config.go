package config

import (
	"fmt"
	"strings"

	"github.com/tokogitar/tokogitar/internal/logger"

	"github.com/spf13/viper"
)

// Config is the application configuration tree.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Upload    UploadConfig    `mapstructure:"upload"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Security  SecurityConfig  `mapstructure:"security"`
	Email     EmailConfig     `mapstructure:"email"`
	Midtrans  MidtransConfig  `mapstructure:"midtrans"`
	Biteship  BiteshipConfig  `mapstructure:"biteship"`
	Warehouse WarehouseConfig `mapstructure:"warehouse"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig holds log output settings.
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions converts the section into logger options.
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig holds connection pool settings.
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig holds database settings.
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // sqlite / postgres
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	SecretKey   string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// RedisConfig holds cache settings.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig holds async queue settings.
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// EmailConfig holds SMTP settings.
type EmailConfig struct {
	Enabled   bool            `mapstructure:"enabled"`
	Host      string          `mapstructure:"host"`
	Port      int             `mapstructure:"port"`
	Username  string          `mapstructure:"username"`
	Password  string          `mapstructure:"password"`
	From      string          `mapstructure:"from"`
	FromName  string          `mapstructure:"from_name"`
	UseTLS    bool            `mapstructure:"use_tls"`
	UseSSL    bool            `mapstructure:"use_ssl"`
	ResetCode ResetCodeConfig `mapstructure:"reset_code"`
}

// ResetCodeConfig holds password reset OTP settings.
type ResetCodeConfig struct {
	ExpireMinutes  int `mapstructure:"expire_minutes"`
	MaxPerHour     int `mapstructure:"max_per_hour"`
	Length         int `mapstructure:"length"`
	MaxVerifyTries int `mapstructure:"max_verify_tries"`
}

// MidtransConfig holds payment gateway credentials.
type MidtransConfig struct {
	ServerKey  string `mapstructure:"server_key"`
	ClientKey  string `mapstructure:"client_key"`
	BaseURL    string `mapstructure:"base_url"`
	TimeoutMS  int    `mapstructure:"timeout_ms"`
	Production bool   `mapstructure:"production"`
}

// BiteshipConfig holds shipping aggregator credentials.
type BiteshipConfig struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
	Couriers  string `mapstructure:"couriers"` // comma separated courier codes for rate lookup
}

// WarehouseConfig holds the origin address used for shipping quotes and labels.
type WarehouseConfig struct {
	ContactName  string `mapstructure:"contact_name"`
	ContactPhone string `mapstructure:"contact_phone"`
	Address      string `mapstructure:"address"`
	AreaID       string `mapstructure:"area_id"`
	PostalCode   string `mapstructure:"postal_code"`
}

// UploadConfig holds product image upload settings.
type UploadConfig struct {
	Dir               string   `mapstructure:"dir"`
	MaxSize           int64    `mapstructure:"max_size"`
	AllowedTypes      []string `mapstructure:"allowed_types"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig holds security settings.
type SecurityConfig struct {
	LoginRateLimit LoginRateLimitConfig `mapstructure:"login_rate_limit"`
	PasswordPolicy PasswordPolicyConfig `mapstructure:"password_policy"`
}

// LoginRateLimitConfig holds login throttle settings.
type LoginRateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxAttempts   int `mapstructure:"max_attempts"`
	BlockSeconds  int `mapstructure:"block_seconds"`
}

// PasswordPolicyConfig holds password strength requirements.
type PasswordPolicyConfig struct {
	MinLength      int  `mapstructure:"min_length"`
	RequireLetter  bool `mapstructure:"require_letter"`
	RequireUpper   bool `mapstructure:"require_upper"`
	RequireLower   bool `mapstructure:"require_lower"`
	RequireNumber  bool `mapstructure:"require_number"`
	RequireSpecial bool `mapstructure:"require_special"`
}

// Load reads config.yml plus environment overrides.
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./")
	viper.AddConfigPath("../")   // when running from cmd/server
	viper.AddConfigPath("./etc") // etc folder

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "app.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "./db/tokogitar.db")
	viper.SetDefault("database.pool.max_open_conns", 1)
	viper.SetDefault("database.pool.max_idle_conns", 1)
	viper.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	viper.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	viper.SetDefault("jwt.secret", "change-me-in-production")
	viper.SetDefault("jwt.expire_hours", 24)
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "tg")
	viper.SetDefault("queue.enabled", true)
	viper.SetDefault("queue.host", "127.0.0.1")
	viper.SetDefault("queue.port", 6379)
	viper.SetDefault("queue.password", "")
	viper.SetDefault("queue.db", 1)
	viper.SetDefault("queue.concurrency", 10)
	viper.SetDefault("queue.queues", map[string]int{
		"default":  10,
		"critical": 5,
	})
	viper.SetDefault("upload.dir", "./uploads")
	viper.SetDefault("upload.max_size", 10485760)
	viper.SetDefault("upload.allowed_types", []string{
		"image/jpeg",
		"image/png",
		"image/webp",
	})
	viper.SetDefault("upload.allowed_extensions", []string{
		".jpg",
		".jpeg",
		".png",
		".webp",
	})
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
		"X-CSRF-Token",
	})
	viper.SetDefault("cors.allow_credentials", true)
	viper.SetDefault("cors.max_age", 600)
	viper.SetDefault("security.login_rate_limit.window_seconds", 300)
	viper.SetDefault("security.login_rate_limit.max_attempts", 5)
	viper.SetDefault("security.login_rate_limit.block_seconds", 900)
	viper.SetDefault("security.password_policy.min_length", 8)
	viper.SetDefault("security.password_policy.require_letter", true)
	viper.SetDefault("security.password_policy.require_upper", false)
	viper.SetDefault("security.password_policy.require_lower", false)
	viper.SetDefault("security.password_policy.require_number", true)
	viper.SetDefault("security.password_policy.require_special", false)
	viper.SetDefault("email.enabled", false)
	viper.SetDefault("email.host", "")
	viper.SetDefault("email.port", 587)
	viper.SetDefault("email.username", "")
	viper.SetDefault("email.password", "")
	viper.SetDefault("email.from", "")
	viper.SetDefault("email.from_name", "Toko Gitar")
	viper.SetDefault("email.use_tls", true)
	viper.SetDefault("email.use_ssl", false)
	viper.SetDefault("email.reset_code.expire_minutes", 10)
	viper.SetDefault("email.reset_code.max_per_hour", 5)
	viper.SetDefault("email.reset_code.length", 6)
	viper.SetDefault("email.reset_code.max_verify_tries", 5)
	viper.SetDefault("midtrans.server_key", "")
	viper.SetDefault("midtrans.client_key", "")
	viper.SetDefault("midtrans.base_url", "https://app.sandbox.midtrans.com")
	viper.SetDefault("midtrans.timeout_ms", 15000)
	viper.SetDefault("midtrans.production", false)
	viper.SetDefault("biteship.api_key", "")
	viper.SetDefault("biteship.base_url", "https://api.biteship.com")
	viper.SetDefault("biteship.timeout_ms", 15000)
	viper.SetDefault("biteship.couriers", "jne,jnt,sicepat,anteraja")
	viper.SetDefault("warehouse.contact_name", "Gudang Toko Gitar")
	viper.SetDefault("warehouse.contact_phone", "")
	viper.SetDefault("warehouse.address", "")
	viper.SetDefault("warehouse.area_id", "")
	viper.SetDefault("warehouse.postal_code", "")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // server.port -> SERVER_PORT

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("parse config failed: %w", err))
	}

	return &cfg
}

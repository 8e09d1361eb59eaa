package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the service needs at startup. Values come from an
// optional YAML file first, then the environment on top, so a deploy can
// ship a config.yaml and still override single keys per container.
type Config struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`

	UpstreamBaseURL string        `yaml:"upstream_base_url"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`
	// ServiceToken authenticates background jobs against the upstream API.
	// Optional; token-guarded jobs are skipped when empty.
	ServiceToken string `yaml:"service_token"`

	DBDriver    string `yaml:"db_driver"` // postgres or sqlite
	DBHost      string `yaml:"db_host"`
	DBPort      string `yaml:"db_port"`
	DBUser      string `yaml:"db_user"`
	DBPassword  string `yaml:"db_password"`
	DBName      string `yaml:"db_name"`
	DBSSLMode   string `yaml:"db_sslmode"`
	SQLitePath  string `yaml:"sqlite_path"`
	AutoMigrate bool   `yaml:"auto_migrate"`

	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	RefreshSpec   string        `yaml:"refresh_spec"` // cron spec for warm refresh

	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	LogJSON  bool   `yaml:"log_json"`
}

// Load reads CONFIG_FILE (default config.yaml, silently skipped when
// absent), applies environment overrides and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Host:            "127.0.0.1",
		Port:            "3000",
		UpstreamTimeout: 15 * time.Second,
		DBDriver:        "postgres",
		DBSSLMode:       "disable",
		SQLitePath:      "gamemart.db",
		AutoMigrate:     true,
		SessionTTL:      12 * time.Hour,
		CacheTTL:        30 * time.Second,
		RefreshSpec:     "@every 1m",
		LogLevel:        "info",
	}

	path := envOr("CONFIG_FILE", "config.yaml")
	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg.Host = envOr("HOST", cfg.Host)
	cfg.Port = envOr("PORT", cfg.Port)
	cfg.UpstreamBaseURL = envOr("UPSTREAM_BASE_URL", cfg.UpstreamBaseURL)
	cfg.ServiceToken = envOr("UPSTREAM_SERVICE_TOKEN", cfg.ServiceToken)
	cfg.DBDriver = envOr("DB_DRIVER", cfg.DBDriver)
	cfg.DBHost = envOr("DB_HOST", cfg.DBHost)
	cfg.DBPort = envOr("DB_PORT", cfg.DBPort)
	cfg.DBUser = envOr("DB_USER", cfg.DBUser)
	cfg.DBPassword = envOr("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = envOr("DB_NAME", cfg.DBName)
	cfg.DBSSLMode = envOr("DB_SSLMODE", cfg.DBSSLMode)
	cfg.SQLitePath = envOr("SQLITE_PATH", cfg.SQLitePath)
	cfg.SessionSecret = envOr("SESSION_SECRET", cfg.SessionSecret)
	cfg.TelegramToken = envOr("TELEGRAM_BOT_TOKEN", cfg.TelegramToken)
	cfg.RefreshSpec = envOr("REFRESH_SPEC", cfg.RefreshSpec)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = envOr("LOG_FILE", cfg.LogFile)

	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid UPSTREAM_TIMEOUT: %w", err)
		}
		cfg.UpstreamTimeout = d
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = d
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid DB_AUTO_MIGRATE: %w", err)
		}
		cfg.AutoMigrate = b
	}
	if v := os.Getenv("LOG_JSON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid LOG_JSON: %w", err)
		}
		cfg.LogJSON = b
	}

	if cfg.UpstreamBaseURL == "" {
		return nil, fmt.Errorf("config: UPSTREAM_BASE_URL is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("config: SESSION_SECRET is required")
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

// PostgresDSN assembles the gorm DSN from the discrete DB_* settings.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// Addr is the listen address for the dashboard HTTP surface.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application settings resolved from the environment.
type Config struct {
	AppName string
	AppPort string

	DBDriver    string // sqlite or postgres
	DatabaseDSN string

	JWTSecret      string
	AccessTokenTTL time.Duration
	AdminEmails    []string

	PageDefaultLimit int
	PageMaxLimit     int

	RedisURL     string
	CartCacheTTL time.Duration

	RabbitMQURL      string
	OrderEventsQueue string

	CORSAllowOrigins string
}

// Load reads the configuration from environment variables, falling back to
// development defaults.
func Load() (Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.SetDefault("APP_NAME", "laptop-store")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "laptopstore.db")
	v.SetDefault("JWT_SECRET", "super_secret_key_change_me_in_production")
	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	v.SetDefault("ADMIN_EMAILS", "")
	v.SetDefault("PAGE_DEFAULT_LIMIT", 10)
	v.SetDefault("PAGE_MAX_LIMIT", 100)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CART_CACHE_TTL", "15m")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("ORDER_EVENTS_QUEUE", "order_queue")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.AutomaticEnv()

	cfg := Config{
		AppName:          v.GetString("APP_NAME"),
		AppPort:          v.GetString("APP_PORT"),
		DBDriver:         strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		AccessTokenTTL:   time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute,
		AdminEmails:      splitList(v.GetString("ADMIN_EMAILS")),
		PageDefaultLimit: v.GetInt("PAGE_DEFAULT_LIMIT"),
		PageMaxLimit:     v.GetInt("PAGE_MAX_LIMIT"),
		RedisURL:         v.GetString("REDIS_URL"),
		CartCacheTTL:     v.GetDuration("CART_CACHE_TTL"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		OrderEventsQueue: v.GetString("ORDER_EVENTS_QUEUE"),
		CORSAllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
	}

	if !strings.HasPrefix(cfg.AppPort, ":") {
		cfg.AppPort = ":" + cfg.AppPort
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.PageMaxLimit <= 0 {
		return fmt.Errorf("PAGE_MAX_LIMIT must be positive")
	}
	if c.PageDefaultLimit <= 0 || c.PageDefaultLimit > c.PageMaxLimit {
		return fmt.Errorf("PAGE_DEFAULT_LIMIT must be between 1 and PAGE_MAX_LIMIT")
	}
	if c.CartCacheTTL <= 0 {
		return fmt.Errorf("CART_CACHE_TTL must be positive")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

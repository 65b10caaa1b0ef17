package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the portfolio service.
type Config struct {
	AppName                   string
	AppEnv                    string
	AppPort                   string
	StaticDir                 string
	DatabaseURL               string
	DatabaseConnectTimeout    time.Duration
	DatabaseWriteTimeout      time.Duration
	DatabaseReconnectInterval time.Duration
	RedisURL                  string
	ContactDedupeTTL          time.Duration
	ContactRateLimit          int
	ContactRateWindow         time.Duration
	NATSURL                   string
	NATSSubject               string
	AdminJWTSecret            string
	CORSAllowOrigins          string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
// PORT and MONGODB_URI are honoured as fallbacks for the prefixed variables.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("app.port", "PORTFOLIO_APP_PORT", "PORT")
	_ = v.BindEnv("database.url", "PORTFOLIO_DATABASE_URL", "MONGODB_URI")

	v.SetDefault("app.name", "Portfolio")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("app.static_dir", "web")
	v.SetDefault("database.url", "mongodb://localhost:27017/portfolio")
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.write_timeout", "5s")
	v.SetDefault("database.reconnect_interval", "0s")
	v.SetDefault("contact.dedupe_ttl", "5m")
	v.SetDefault("contact.rate_limit", 0)
	v.SetDefault("contact.rate_window", "1m")
	v.SetDefault("nats.subject", "portfolio.contacts.received")
	v.SetDefault("cors.allow_origins", "*")

	connectTimeout, err := parseDuration(v, "database.connect_timeout")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := parseDuration(v, "database.write_timeout")
	if err != nil {
		return Config{}, err
	}
	reconnectInterval, err := parseDuration(v, "database.reconnect_interval")
	if err != nil {
		return Config{}, err
	}
	dedupeTTL, err := parseDuration(v, "contact.dedupe_ttl")
	if err != nil {
		return Config{}, err
	}
	rateWindow, err := parseDuration(v, "contact.rate_window")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:                   v.GetString("app.name"),
		AppEnv:                    v.GetString("app.env"),
		AppPort:                   strings.TrimSpace(v.GetString("app.port")),
		StaticDir:                 v.GetString("app.static_dir"),
		DatabaseURL:               strings.TrimSpace(v.GetString("database.url")),
		DatabaseConnectTimeout:    connectTimeout,
		DatabaseWriteTimeout:      writeTimeout,
		DatabaseReconnectInterval: reconnectInterval,
		RedisURL:                  strings.TrimSpace(v.GetString("redis.url")),
		ContactDedupeTTL:          dedupeTTL,
		ContactRateLimit:          v.GetInt("contact.rate_limit"),
		ContactRateWindow:         rateWindow,
		NATSURL:                   strings.TrimSpace(v.GetString("nats.url")),
		NATSSubject:               v.GetString("nats.subject"),
		AdminJWTSecret:            v.GetString("admin.jwt_secret"),
		CORSAllowOrigins:          v.GetString("cors.allow_origins"),
	}

	if cfg.AppPort == "" {
		return Config{}, fmt.Errorf("app port must not be empty")
	}

	if cfg.DatabaseConnectTimeout <= 0 {
		cfg.DatabaseConnectTimeout = 10 * time.Second
	}

	if cfg.DatabaseWriteTimeout <= 0 {
		cfg.DatabaseWriteTimeout = 5 * time.Second
	}

	if cfg.DatabaseReconnectInterval < 0 {
		return Config{}, fmt.Errorf("database reconnect interval must not be negative")
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" || raw == "0" {
		return 0, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

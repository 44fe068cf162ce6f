package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	FallbackPort string `env:"DEFAULT_PORT" envDefault:"3000"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_host" envDefault:"localhost"`
	DBPort      int    `env:"DB_PORT" envDefault:"5432"`
	DBName      string `env:"DB_name"`
	DBUser      string `env:"DB_username"`
	DBPassword  string `env:"DB_password"`
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`

	BcryptCost     int    `env:"BCRYPT_COST" envDefault:"10"`
	TimeZone       string `env:"APP_TIMEZONE" envDefault:"America/New_York"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"json"`
	SwaggerEnabled bool   `env:"SWAGGER_ENABLED" envDefault:"true"`
}

// Load reads environment variables, optionally from a .env file if present.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DatabaseURL == "" && cfg.DBName == "" {
		return Config{}, errors.New("database is not configured: set DATABASE_URL or DB_name")
	}
	return cfg, nil
}

// DSN returns DatabaseURL when set, otherwise a postgres URL assembled from
// the DB_* parts.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:   "/" + c.DBName,
	}
	if c.DBUser != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

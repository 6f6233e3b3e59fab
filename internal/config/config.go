package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultDatabaseURL = "beachbox.db"

// Config holds the runtime settings of the API server.
type Config struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":5001"`
	DatabaseURL     string        `envconfig:"DATABASE_URL" default:"beachbox.db"`
	GinMode         string        `envconfig:"GIN_MODE"`
	CORSOrigins     []string      `envconfig:"CORS_ALLOWED_ORIGINS"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"true"`
	OpeningHour     int           `envconfig:"OPENING_HOUR" default:"8"`
	ClosingHour     int           `envconfig:"CLOSING_HOUR" default:"22"`
	MaxReportDays   int           `envconfig:"MAX_REPORT_DAYS" default:"366"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	envFile := strings.TrimSpace(os.Getenv("ENV_FILE"))
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s addr=%s db=%s hours=%02d-%02d", cfg.AppEnv, cfg.HTTPAddr, redactDSN(cfg.DatabaseURL), cfg.OpeningHour, cfg.ClosingHour)
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.OpeningHour < 0 || c.OpeningHour > 23 {
		return fmt.Errorf("OPENING_HOUR must be within 0..23")
	}
	if c.ClosingHour < 1 || c.ClosingHour > 24 {
		return fmt.Errorf("CLOSING_HOUR must be within 1..24")
	}
	if c.ClosingHour <= c.OpeningHour {
		return fmt.Errorf("CLOSING_HOUR must be greater than OPENING_HOUR")
	}
	if c.MaxReportDays <= 0 {
		return fmt.Errorf("MAX_REPORT_DAYS must be > 0")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	if c.IsProd() && strings.TrimSpace(c.DatabaseURL) == defaultDatabaseURL {
		return fmt.Errorf("in prod/release DATABASE_URL must be set and not default")
	}
	return nil
}

// SlotsPerDay is the number of one-hour slots a court can be booked per day.
func (c *Config) SlotsPerDay() int {
	return c.ClosingHour - c.OpeningHour
}

func (c *Config) IsProd() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "prod" || env == "production" || env == "release"
}

var dsnPassword = regexp.MustCompile(`(password=)('[^']*'|[^\s&]+)`)

// redactDSN hides credentials in URL and keyword DSNs.
func redactDSN(dsn string) string {
	dsn = dsnPassword.ReplaceAllString(dsn, "${1}***")
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	return dsn[:scheme+3] + "***" + dsn[at:]
}

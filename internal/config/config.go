package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Store     StoreConfig     `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
	Business  BusinessConfig  `mapstructure:",squash"`
	External  ExternalConfig  `mapstructure:",squash"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"SERVER_PORT"`
	Host         string        `mapstructure:"SERVER_HOST"`
	Env          string        `mapstructure:"ENV"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type StoreConfig struct {
	// Driver selects the entity store backing: "memory" keeps everything in
	// process memory (optionally seeded with demo data), "postgres" uses the
	// database below.
	Driver       string `mapstructure:"STORE_DRIVER"`
	SeedDemoData bool   `mapstructure:"STORE_SEED_DEMO_DATA"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	MaxOpenConns int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
	Enabled  bool   `mapstructure:"REDIS_ENABLED"`
}

type SchedulerConfig struct {
	// Cron spec (with seconds) for the daily overdue sweep.
	OverdueSweepSpec string `mapstructure:"SCHEDULER_OVERDUE_SWEEP_SPEC"`
	// Cron spec for the upcoming-due reminder job.
	ReminderSpec string `mapstructure:"SCHEDULER_REMINDER_SPEC"`
	// How many days ahead the reminder job looks.
	ReminderWindowDays int `mapstructure:"SCHEDULER_REMINDER_WINDOW_DAYS"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
	Output string `mapstructure:"LOG_OUTPUT"`
}

type BusinessConfig struct {
	// DefaultMonthlyRate is the fallback monthly interest percentage applied
	// when neither the client nor the contract carries one.
	DefaultMonthlyRate string `mapstructure:"DEFAULT_MONTHLY_RATE"`
	// SummaryCacheTTL is how long the dashboard summary stays cached.
	SummaryCacheTTL time.Duration `mapstructure:"SUMMARY_CACHE_TTL"`
}

type ExternalConfig struct {
	ViaCEPBaseURL string        `mapstructure:"VIACEP_BASE_URL"`
	ViaCEPTimeout time.Duration `mapstructure:"VIACEP_TIMEOUT"`
	OpenAIAPIKey  string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel   string        `mapstructure:"OPENAI_MODEL"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Pick up a local .env first so viper sees its values as env vars
	_ = godotenv.Load()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	viper.SetDefault("STORE_DRIVER", "memory")
	viper.SetDefault("STORE_SEED_DEMO_DATA", true)
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("DEFAULT_MONTHLY_RATE", "1.0")
	viper.SetDefault("SUMMARY_CACHE_TTL", "5m")
	viper.SetDefault("SCHEDULER_OVERDUE_SWEEP_SPEC", "0 0 0 * * *")
	viper.SetDefault("SCHEDULER_REMINDER_SPEC", "0 0 9 * * MON")
	viper.SetDefault("SCHEDULER_REMINDER_WINDOW_DAYS", 3)
	viper.SetDefault("VIACEP_BASE_URL", "https://viacep.com.br")
	viper.SetDefault("VIACEP_TIMEOUT", "5s")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")

	// Read from environment variables
	viper.AutomaticEnv()

	// AutomaticEnv alone does not surface env-only keys to Unmarshal; every
	// key has to be bound explicitly or values like DATABASE_URL never land
	// in the struct.
	for _, key := range []string{
		"SERVER_PORT", "SERVER_HOST", "ENV", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"STORE_DRIVER", "STORE_SEED_DEMO_DATA",
		"DATABASE_URL", "DATABASE_MAX_OPEN_CONNS", "DATABASE_MAX_IDLE_CONNS",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_ENABLED",
		"SCHEDULER_OVERDUE_SWEEP_SPEC", "SCHEDULER_REMINDER_SPEC", "SCHEDULER_REMINDER_WINDOW_DAYS",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
		"DEFAULT_MONTHLY_RATE", "SUMMARY_CACHE_TTL",
		"VIACEP_BASE_URL", "VIACEP_TIMEOUT", "OPENAI_API_KEY", "OPENAI_MODEL",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch c.Store.Driver {
	case "memory":
	case "postgres":
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be memory or postgres, got %q", c.Store.Driver)
	}

	if _, err := decimal.NewFromString(c.Business.DefaultMonthlyRate); err != nil {
		return fmt.Errorf("DEFAULT_MONTHLY_RATE must be a valid decimal: %w", err)
	}

	if c.Scheduler.ReminderWindowDays <= 0 {
		return fmt.Errorf("SCHEDULER_REMINDER_WINDOW_DAYS must be greater than 0")
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetDefaultMonthlyRate returns the fallback monthly interest rate as decimal
func (c *Config) GetDefaultMonthlyRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Business.DefaultMonthlyRate)
	return rate
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development" validate:"oneof=development production"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"8080"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required,notEmpty"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	InitialAdmin struct {
		Email     string `env:"EMAIL,required,notEmpty" validate:"email"`
		Password  string `env:"PASSWORD,required,notEmpty"`
		FirstName string `env:"FIRST_NAME" envDefault:"Salon"`
		LastName  string `env:"LAST_NAME" envDefault:"Admin"`
	} `envPrefix:"INITIAL_ADMIN_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"336"` // hours, 14 days
		Secret     string `env:"SECRET,required,notEmpty"`
	} `envPrefix:"JWT_"`
	Redis struct {
		Host             string `env:"HOST" envDefault:"localhost"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD"`
		DB               int    `env:"DB" envDefault:"0"`
		ConnectTimeout   int    `env:"CONNECT_TIMEOUT" envDefault:"5"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"2"`
	} `envPrefix:"REDIS_"`
	Salon struct {
		Name                string `env:"NAME" envDefault:"Salon Manager" validate:"required"`
		Address             string `env:"ADDRESS" envDefault:"ul. Marszalkowska 1, Warszawa" validate:"required"`
		Phone               string `env:"PHONE" envDefault:"+48 22 000 00 00" validate:"required"`
		Email               string `env:"EMAIL" envDefault:"contact@salon.local" validate:"omitempty,email"`
		OpeningTime         string `env:"OPENING_TIME" envDefault:"09:00:00" validate:"datetime=15:04:05"`
		ClosingTime         string `env:"CLOSING_TIME" envDefault:"18:00:00" validate:"datetime=15:04:05"`
		SlotDurationMinutes int    `env:"SLOT_DURATION_MINUTES" envDefault:"30" validate:"min=5,max=60"`
		Timezone            string `env:"TIMEZONE" envDefault:"Europe/Warsaw" validate:"timezone"`
	} `envPrefix:"SALON_"`
	Availability struct {
		Concurrency int `env:"CONCURRENCY" envDefault:"4" validate:"min=1"`
		CacheTTL    int `env:"CACHE_TTL" envDefault:"30"` // seconds, 0 disables the cache
	} `envPrefix:"AVAILABILITY_"`

	location *time.Location
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// only the first error keeps the log readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges env tags cannot express and resolves the salon timezone.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fe := validationErrors[0]
			return fmt.Errorf("invalid configuration %s: failed on %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}

	loc, err := time.LoadLocation(c.Salon.Timezone)
	if err != nil {
		return fmt.Errorf("invalid configuration Salon.Timezone: %w", err)
	}
	c.location = loc

	return nil
}

// SalonLocation is the single implicit timezone all schedules and bookings are expressed in.
func (c *Config) SalonLocation() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

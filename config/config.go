package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/Temutjin2k/fare-estimator/pkg/configparser"
)

// Flags
var (
	modeFlag       = flag.String("mode", "", "application mode: estimator-service | journal-service")
	configPathFlag = flag.String("config-path", "config.yaml", "path to the YAML config file")
	IssueTokenFlag = flag.String("issue-token", "", "print a signed access token for role PASSENGER or ADMIN and exit")
	HelpFlag       = flag.Bool("help", false, "show help")
)

// Errors
var (
	ErrModeNotProvided = errors.New("mode flag not provided")
	ErrInvalidMode     = errors.New("invalid mode")
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Mode     types.ServiceMode
		LogLevel string `env:"LOG_LEVEL" default:"INFO"`

		Services   ServicesConfig
		Estimator  EstimatorConfig
		Database   DatabaseConfig
		RabbitMQ   RabbitMQConfig
		Redis      RedisConfig
		LocationIQ LocationIQConfig
		Auth       Auth
	}

	ServicesConfig struct {
		EstimatorService string `env:"SERVICES_ESTIMATOR_SERVICE" default:"3000"`
		JournalService   string `env:"SERVICES_JOURNAL_SERVICE" default:"3001"`
	}

	EstimatorConfig struct {
		EstimateDelay time.Duration `env:"ESTIMATOR_ESTIMATE_DELAY" default:"1500ms"`
		BookingDelay  time.Duration `env:"ESTIMATOR_BOOKING_DELAY" default:"2s"`
		QuoteTTL      time.Duration `env:"ESTIMATOR_QUOTE_TTL" default:"10m"`
		NoiseSeed     int64         `env:"ESTIMATOR_NOISE_SEED" default:"0"` // 0 seeds from the clock
		TablesPath    string        `env:"ESTIMATOR_TABLES_PATH"`            // empty uses the built-in tables
		PublishEvents bool          `env:"ESTIMATOR_PUBLISH_EVENTS" default:"false"`
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"estimator_user"`
		Password string `env:"DATABASE_PASSWORD" default:"estimator_pass"`
		Database string `env:"DATABASE_DATABASE" default:"estimator_db"`

		MaxConns int32 `env:"DATABASE_MAXCONNS" default:"20"`
	}

	RabbitMQConfig struct {
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`
	}

	// RedisConfig selects the quote cache. Disabled keeps quotes in process memory.
	RedisConfig struct {
		Enabled bool   `env:"REDIS_ENABLED" default:"false"`
		URL     string `env:"REDIS_URL" default:"redis://localhost:6379/0"`
	}

	LocationIQConfig struct {
		Enabled bool          `env:"LOCATIONIQ_ENABLED" default:"false"`
		APIKey  string        `env:"LOCATIONIQ_API_KEY"`
		BaseURL string        `env:"LOCATIONIQ_BASE_URL" default:"https://us1.locationiq.com"`
		Timeout time.Duration `env:"LOCATIONIQ_TIMEOUT" default:"3s"`
	}

	Auth struct {
		AccessTokenTTL time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" default:"24h"`
		JWTSecret      string        `env:"AUTH_JWT_SECRET" default:"supersecretkey"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c DatabaseConfig) GetMaxConns() int32 {
	return c.MaxConns
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

func (c RedisConfig) GetURL() string {
	return c.URL
}

// Port returns the HTTP port of the configured mode.
func (c Config) Port() string {
	if c.Mode == types.JournalService {
		return c.Services.JournalService
	}
	return c.Services.EstimatorService
}

func NewConfig() (*Config, error) {
	return Load(*configPathFlag, *modeFlag)
}

// Load fills the config from .env, the YAML file and the environment, then applies mode.
// An empty mode is allowed only for tooling that does not start a service.
func Load(filepath, mode string) (*Config, error) {
	cfg := &Config{}

	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	if err := cfg.setMode(mode); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) setMode(mode string) error {
	if mode == "" {
		return nil
	}

	switch m := types.ServiceMode(mode); m {
	case types.EstimatorService, types.JournalService:
		c.Mode = m
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
}

// Validate reports configuration that cannot start the selected mode.
func (c *Config) Validate() error {
	if c.Mode == "" {
		return ErrModeNotProvided
	}
	if c.Estimator.EstimateDelay < 0 || c.Estimator.BookingDelay < 0 {
		return errors.New("estimator delays must not be negative")
	}
	if c.Estimator.QuoteTTL <= 0 {
		return errors.New("quote ttl must be positive")
	}
	if c.LocationIQ.Enabled && c.LocationIQ.APIKey == "" {
		return errors.New("LOCATIONIQ_API_KEY is required when LocationIQ is enabled")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET must not be empty")
	}
	return nil
}

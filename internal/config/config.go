package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/interview-cases/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":3000"`

	// Database configuration
	DatabaseURL         string               `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int                  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int                  `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration        `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration        `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration        `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBTxRetry           pkgRetry.RetryConfig `envPrefix:"DB_TX_RETRY_"`

	// Question generator
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`
	QuestionsCfg    QuestionsConfig    `envPrefix:"QUESTIONS_"`

	// Case listing cache
	CacheCfg CacheConfig `envPrefix:"CACHE_"`
	RedisCfg RedisConfig `envPrefix:"REDIS_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Seed the default cases when the cases table is empty
	SeedDefaultCases bool `env:"SEED_DEFAULT_CASES" envDefault:"true"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	ChatEndpoint string  `env:"CHAT_ENDPOINT" envDefault:"/chat/completions"`
	Model        string  `env:"MODEL" envDefault:"gpt-3.5-turbo"`
	Temperature  float32 `env:"TEMPERATURE" envDefault:"0.7"`
	MaxTokens    int     `env:"MAX_TOKENS" envDefault:"2000"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"55s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://api.openai.com/v1"`
}

// QuestionsConfig controls the question cache policy
type QuestionsConfig struct {
	CacheThreshold int `env:"CACHE_THRESHOLD" envDefault:"5"`
	RetentionCap   int `env:"RETENTION_CAP" envDefault:"20"`
}

type CacheConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"5m"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// RedisConfig is optional: the in-process cache is used when Addr is empty
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment and validates it
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.DBTxRetry.Attempts == 0 {
		cfg.DBTxRetry = *pkgRetry.DefaultRetryConfig()
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	// Validate question cache policy
	if cfg.QuestionsCfg.RetentionCap < 1 {
		errors = append(errors, fmt.Sprintf("QUESTIONS_RETENTION_CAP must be positive, got %d", cfg.QuestionsCfg.RetentionCap))
	}

	if cfg.QuestionsCfg.CacheThreshold < 1 || cfg.QuestionsCfg.CacheThreshold > cfg.QuestionsCfg.RetentionCap {
		errors = append(errors, fmt.Sprintf("QUESTIONS_CACHE_THRESHOLD must be between 1 and QUESTIONS_RETENTION_CAP(%d), got %d",
			cfg.QuestionsCfg.RetentionCap, cfg.QuestionsCfg.CacheThreshold))
	}

	if cfg.LLMConnectorCfg.Url == "" {
		errors = append(errors, "LLM_SERVICE_URL must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}

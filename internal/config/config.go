package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Input    InputConfig    `yaml:"input" envconfig:"INPUT"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Exchange ExchangeConfig `yaml:"exchange" envconfig:"EXCHANGE"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// InputConfig describes the sales feed file and its format.
type InputConfig struct {
	FeedFile  string   `yaml:"feed_file" envconfig:"FEED_FILE" validate:"required"`
	Encodings []string `yaml:"encodings" envconfig:"ENCODINGS" validate:"min=1"`
}

// AnalysisConfig holds tunables for the aggregation stage.
type AnalysisConfig struct {
	TopProducts          int `yaml:"top_products" envconfig:"TOP_PRODUCTS" validate:"gt=0"`
	LowQuantityThreshold int `yaml:"low_quantity_threshold" envconfig:"LOW_QUANTITY_THRESHOLD" validate:"gt=0"`
}

// ExchangeConfig configures the currency-rate lookup collaborator.
type ExchangeConfig struct {
	URL            string        `yaml:"url" envconfig:"URL" validate:"required,url"`
	Timeout        time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	TargetCurrency string        `yaml:"target_currency" envconfig:"TARGET_CURRENCY" validate:"required,len=3"`
}

// ServerConfig contains HTTP server configuration for the report server.
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// Default returns the built-in configuration. Defaults live here rather
// than in struct tags so that file and environment overrides layer cleanly
// on top of them.
func Default() Config {
	return Config{
		Input: InputConfig{
			FeedFile:  DefaultFeedFile,
			Encodings: append([]string(nil), DefaultEncodings...),
		},
		Analysis: AnalysisConfig{
			TopProducts:          DefaultTopProducts,
			LowQuantityThreshold: DefaultLowQuantityThreshold,
		},
		Exchange: ExchangeConfig{
			URL:            DefaultExchangeRateURL,
			Timeout:        DefaultExchangeTimeout,
			TargetCurrency: DefaultTargetCurrency,
		},
		Server: ServerConfig{
			Port:            DefaultServerPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   25,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			DataDir:   DefaultDataDir,
			OutputDir: DefaultOutputDir,
			LogsDir:   DefaultLogsDir,
		},
	}
}

// Load builds the configuration by layering an optional YAML file and then
// environment variables (SALES_ prefix) over the built-in defaults.
// Environment variables take precedence over the file.
func Load() (*Config, error) {
	cfg := Default()

	configFile := os.Getenv("SALES_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	}

	if err := envconfig.Process("SALES", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct-level rules.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Redis      RedisConfig      `yaml:"redis"`
	Database   DatabaseConfig   `yaml:"database"`
	Events     EventsConfig     `yaml:"events"`
	Simulation SimulationConfig `yaml:"simulation"`
	Pricing    PricingConfig    `yaml:"pricing"`

	// SeedDemoData seeds the campaign store with deterministic demo
	// campaigns, contacts, and templates on startup.
	SeedDemoData bool `yaml:"seed_demo_data"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	// Allow override via environment
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// StorageConfig holds snapshot storage configuration.
// Type "none" (the default) keeps all state in memory only.
type StorageConfig struct {
	Type                 string `yaml:"type"` // "none", "local", or "aws"
	LocalPath            string `yaml:"local_path"`
	S3Bucket             string `yaml:"s3_bucket"`
	DynamoDBTable        string `yaml:"dynamodb_table"`
	AWSRegion            string `yaml:"aws_region"`
	AWSAccessKey         string `yaml:"aws_access_key"`
	AWSSecretKey         string `yaml:"aws_secret_key"`
	FlushIntervalSeconds int    `yaml:"flush_interval_seconds"`
}

// FlushInterval returns the snapshot flush interval as a duration
func (c StorageConfig) FlushInterval() time.Duration {
	return time.Duration(c.FlushIntervalSeconds) * time.Second
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Enabled  bool   `yaml:"enabled"`
}

// DatabaseConfig holds the optional Postgres campaign archive configuration
type DatabaseConfig struct {
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// EventsConfig selects the business event tracker sink
type EventsConfig struct {
	Sink   string `yaml:"sink"` // "log" or "redis"
	Stream string `yaml:"stream"`
}

// SimulationConfig holds delivery simulation settings
type SimulationConfig struct {
	TickIntervalMillis int `yaml:"tick_interval_millis"`
	MaxBatch           int `yaml:"max_batch"` // max messages sent per tick
}

// TickInterval returns the delivery tick interval as a duration
func (c SimulationConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMillis) * time.Millisecond
}

// PricingConfig holds the static monetization assumptions
type PricingConfig struct {
	PerMessageUSD float64 `yaml:"per_message_usd"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a configuration with all defaults applied, used when no
// config file is present.
func Default() *Config {
	cfg := &Config{SeedDemoData: true}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "none"
	}
	if cfg.Storage.LocalPath == "" {
		cfg.Storage.LocalPath = "./data"
	}
	if cfg.Storage.AWSRegion == "" {
		cfg.Storage.AWSRegion = "us-east-1"
	}
	if cfg.Storage.FlushIntervalSeconds == 0 {
		cfg.Storage.FlushIntervalSeconds = 60
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Events.Sink == "" {
		cfg.Events.Sink = "log"
	}
	if cfg.Events.Stream == "" {
		cfg.Events.Stream = "flutterbye:business_events"
	}
	if cfg.Simulation.TickIntervalMillis == 0 {
		cfg.Simulation.TickIntervalMillis = 2000
	}
	if cfg.Simulation.MaxBatch == 0 {
		cfg.Simulation.MaxBatch = 10
	}
	if cfg.Pricing.PerMessageUSD == 0 {
		cfg.Pricing.PerMessageUSD = 0.25
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in production.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if os.IsNotExist(err) {
		// No config file is fine; run on defaults plus env overrides.
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
		cfg.Redis.Enabled = true
	}
	if pw := os.Getenv("REDIS_PASSWORD"); pw != "" {
		cfg.Redis.Password = pw
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
		cfg.Database.Enabled = true
	}
	if bucket := os.Getenv("SNAPSHOT_S3_BUCKET"); bucket != "" {
		cfg.Storage.S3Bucket = bucket
	}
	if table := os.Getenv("SNAPSHOT_DYNAMODB_TABLE"); table != "" {
		cfg.Storage.DynamoDBTable = table
	}
	if accessKey := os.Getenv("AWS_ACCESS_KEY_ID"); accessKey != "" {
		cfg.Storage.AWSAccessKey = accessKey
	}
	if secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY"); secretKey != "" {
		cfg.Storage.AWSSecretKey = secretKey
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		cfg.Storage.AWSRegion = region
	}

	return cfg, nil
}

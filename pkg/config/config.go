package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string           `yaml:"environment" default:"development" validate:"required"`
	Server      ServerConfig     `yaml:"server"`
	Log         LogConfig        `yaml:"log"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	OpenSea     OpenSeaConfig    `yaml:"opensea"`
	Forecast    ForecastConfig   `yaml:"forecast"`
	Live        LiveConfig       `yaml:"live"`
	Cache       CacheConfig      `yaml:"cache"`
	Kafka       KafkaConfig      `yaml:"kafka"`
	ClickHouse  ClickHouseConfig `yaml:"clickhouse"`
	RateLimit   RateLimitConfig  `yaml:"ratelimit"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	SlowThreshold   time.Duration `yaml:"slow_threshold" default:"2s"`
	CORSOrigins     []string      `yaml:"cors_origins" default:"[\"*\"]"`
}

type LogConfig struct {
	Level     string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic"`
	Format    string `yaml:"format" default:"json" validate:"oneof=json console"`
	Output    string `yaml:"output" default:"stdout"`
	Collector struct {
		Enabled     bool          `yaml:"enabled"`
		Topic       string        `yaml:"topic" default:"nftcast.logs"`
		Interval    time.Duration `yaml:"interval" default:"30s"`
		Threshold   int           `yaml:"threshold" default:"100"`
		CollectWarn bool          `yaml:"collect_warn"`
	} `yaml:"collector"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Path    string `yaml:"path" default:"/metrics"`
}

type OpenSeaConfig struct {
	BaseURL     string        `yaml:"base_url" default:"https://api.opensea.io/api/v2" validate:"required,url"`
	BearerToken string        `yaml:"bearer_token"`
	Timeout     time.Duration `yaml:"timeout" default:"15s"`
	RPS         float64       `yaml:"rps" default:"4" validate:"gt=0"`
	Burst       int           `yaml:"burst" default:"4" validate:"min=1"`
	Retries     int           `yaml:"retries" default:"2" validate:"min=0,max=10"`
	Backoff     time.Duration `yaml:"backoff" default:"200ms"`
}

type ForecastConfig struct {
	DefaultHorizon    int           `yaml:"default_horizon" default:"5" validate:"min=1"`
	MaxHorizon        int           `yaml:"max_horizon" default:"24" validate:"min=1,max=120"`
	HistoryMonths     int           `yaml:"history_months" default:"12" validate:"min=1"`
	MinSnapshotPoints int           `yaml:"min_snapshot_points" default:"10" validate:"min=2"`
	DefaultBasePrice  float64       `yaml:"default_base_price" default:"45.2" validate:"gt=0"`
	Timeout           time.Duration `yaml:"timeout" default:"2s"`
	Seed              int64         `yaml:"seed"` // 0 seeds from the clock
}

type LiveConfig struct {
	Interval time.Duration `yaml:"interval" default:"3s"`
	Supply   float64       `yaml:"supply" default:"55000" validate:"gt=0"`
}

type CacheConfig struct {
	Enabled       bool          `yaml:"enabled" default:"true"`
	NFTTTL        time.Duration `yaml:"nft_ttl" default:"5m"`
	StatsTTL      time.Duration `yaml:"stats_ttl" default:"1m"`
	MemorySize    int           `yaml:"memory_size" default:"1000" validate:"min=1"`
	SweepInterval time.Duration `yaml:"sweep_interval" default:"5m"`
	Redis         struct {
		Enabled      bool          `yaml:"enabled"`
		Addr         string        `yaml:"addr" default:"localhost:6379"`
		Password     string        `yaml:"password"`
		DB           int           `yaml:"db"`
		Prefix       string        `yaml:"prefix" default:"nftcast"`
		PoolSize     int           `yaml:"pool_size" default:"10"`
		MinIdleConns int           `yaml:"min_idle_conns" default:"2"`
		PoolTimeout  time.Duration `yaml:"pool_timeout" default:"30s"`
		DialTimeout  time.Duration `yaml:"dial_timeout" default:"5s"`
	} `yaml:"redis"`
}

type KafkaConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Brokers      []string      `yaml:"brokers"`
	Topic        string        `yaml:"topic" default:"nftcast.analyses"`
	RequiredAcks int           `yaml:"required_acks" default:"-1"`
	Compression  string        `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
	MaxAttempts  int           `yaml:"max_attempts" default:"3"`
	BatchTimeout time.Duration `yaml:"batch_timeout" default:"1s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	Async        bool          `yaml:"async"`
}

type ClickHouseConfig struct {
	Enabled          bool          `yaml:"enabled"`
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port" default:"9000"`
	Database         string        `yaml:"database" default:"nftcast"`
	User             string        `yaml:"user" default:"default"`
	Password         string        `yaml:"password"`
	Table            string        `yaml:"table" default:"nftcast.floor_snapshots"`
	UseHTTP          bool          `yaml:"use_http"`
	AsyncInsert      bool          `yaml:"async_insert"`
	WaitForAsync     bool          `yaml:"wait_for_async_insert"`
	DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
	ReadTimeout      time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout     time.Duration `yaml:"write_timeout" default:"10s"`
	MaxExecutionTime time.Duration `yaml:"max_execution_time"`
}

type RateLimitConfig struct {
	Enabled       bool          `yaml:"enabled" default:"true"`
	Capacity      float64       `yaml:"capacity" default:"30" validate:"gt=0"`
	RefillPerSec  float64       `yaml:"refill_per_sec" default:"1" validate:"gt=0"`
	SweepInterval time.Duration `yaml:"sweep_interval" default:"1m"`
	IdleTTL       time.Duration `yaml:"idle_ttl" default:"10m"`
}

// Load reads and parses a YAML configuration file on top of the defaults.
// An empty path yields the defaults alone.
func Load(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := c.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(k string) (string, bool) {
		v, ok := lookup(k)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("OPENSEA_BEARER_TOKEN"); ok {
		c.OpenSea.BearerToken = v
	}
	if v, ok := get("OPENSEA_BASE_URL"); ok {
		c.OpenSea.BaseURL = v
	}
	if v, ok := get("HTTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HTTP_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v, ok := get("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v, ok := get("KAFKA_BROKERS"); ok {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v, ok := get("KAFKA_TOPIC"); ok {
		c.Kafka.Topic = v
	}
	if v, ok := get("CLICKHOUSE_HOST"); ok {
		c.ClickHouse.Host = v
		c.ClickHouse.Enabled = true
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = strings.ToLower(v)
	}
	return nil
}

var validate = validator.New()

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Forecast.DefaultHorizon > c.Forecast.MaxHorizon {
		return fmt.Errorf("forecast.default_horizon (%d) exceeds forecast.max_horizon (%d)",
			c.Forecast.DefaultHorizon, c.Forecast.MaxHorizon)
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("kafka.brokers and kafka.topic are required when kafka is enabled")
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when clickhouse is enabled")
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required when redis is enabled")
	}
	if c.Log.Collector.Enabled && !c.Kafka.Enabled {
		return fmt.Errorf("log.collector requires kafka")
	}
	return nil
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

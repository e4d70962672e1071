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
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		AllowOrigins    []string      `yaml:"allow_origins" default:"[\"*\"]"`
	} `yaml:"server"`
	Log struct {
		Level      string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic"`
		Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
		Output     string `yaml:"output" default:"stdout"`
		MaxSizeMB  int    `yaml:"max_size_mb" default:"100"`
		MaxBackups int    `yaml:"max_backups" default:"5"`
		MaxAgeDays int    `yaml:"max_age_days" default:"14"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	CoinGecko struct {
		BaseURL      string            `yaml:"base_url" default:"https://api.coingecko.com/api/v3" validate:"required,url"`
		APIKey       string            `yaml:"api_key"`
		APIKeyHeader string            `yaml:"api_key_header" default:"x-cg-demo-api-key"`
		Timeout      time.Duration     `yaml:"timeout" default:"15s"`
		Days         int               `yaml:"days" default:"3650" validate:"gt=0"`
		Assets       map[string]string `yaml:"assets"` // field id -> coin id
		CacheTTL     time.Duration     `yaml:"cache_ttl" default:"6h"`
	} `yaml:"coingecko"`
	Cache struct {
		MemorySize int `yaml:"memory_size" default:"256"`
		Redis      struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"macropulse"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Refresh struct {
		Enabled     bool          `yaml:"enabled" default:"true"`
		Schedule    string        `yaml:"schedule" default:"@daily"`
		LoadTimeout time.Duration `yaml:"load_timeout" default:"45s"`
	} `yaml:"refresh"`
	Insight struct {
		BaseURL string        `yaml:"base_url" default:"https://generativelanguage.googleapis.com/v1beta" validate:"required,url"`
		Model   string        `yaml:"model" default:"gemini-2.5-flash"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout" default:"30s"`
		Retries int           `yaml:"retries" default:"1"`
		Rate    float64       `yaml:"rate" default:"0.5"` // requests per second per client
		Burst   int           `yaml:"burst" default:"3"`
	} `yaml:"insight"`
}

// DefaultAssets maps overlay-eligible fields to CoinGecko coin ids.
var DefaultAssets = map[string]string{
	"bitcoin":  "bitcoin",
	"ethereum": "ethereum",
}

var validate = validator.New()

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if len(c.CoinGecko.Assets) == 0 {
		c.CoinGecko.Assets = make(map[string]string, len(DefaultAssets))
		for k, v := range DefaultAssets {
			c.CoinGecko.Assets[k] = v
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
	if err := c.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("APP_ENV"); v != "" {
		c.Environment = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := getenv("COINGECKO_API_KEY"); v != "" {
		c.CoinGecko.APIKey = v
	}
	if v := getenv("COINGECKO_BASE_URL"); v != "" {
		c.CoinGecko.BaseURL = v
	}
	// GEMINI_API_KEY wins over the generic API_KEY.
	if v := getenv("API_KEY"); v != "" {
		c.Insight.APIKey = v
	}
	if v := getenv("GEMINI_API_KEY"); v != "" {
		c.Insight.APIKey = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		host, port, err := splitHostPort(v)
		if err != nil {
			return fmt.Errorf("REDIS_ADDR: %w", err)
		}
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Host = host
		c.Cache.Redis.Port = port
	}
	if v := getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := getenv("REFRESH_SCHEDULE"); v != "" {
		c.Refresh.Schedule = v
	}
	return nil
}

func splitHostPort(addr string) (string, int, error) {
	host, portStr, ok := strings.Cut(addr, ":")
	if !ok {
		return addr, 6379, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, err
	}
	return host, port, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Refresh.Enabled && strings.TrimSpace(c.Refresh.Schedule) == "" {
		return fmt.Errorf("refresh.schedule is required when refresh is enabled")
	}
	if c.Insight.Rate < 0 || c.Insight.Burst < 0 {
		return fmt.Errorf("insight.rate and insight.burst must not be negative")
	}
	return nil
}

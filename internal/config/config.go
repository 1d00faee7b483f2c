// Package config loads settings from an optional YAML file, a .env file and
// the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Providers struct {
		FinnhubKey      string `yaml:"finnhub_api_key"`
		AlphaVantageKey string `yaml:"alpha_vantage_api_key"`
		MassiveKey      string `yaml:"massive_api_key"`
	} `yaml:"providers"`
	Cache struct {
		TTL      time.Duration `yaml:"ttl"`
		Capacity int           `yaml:"capacity"`
	} `yaml:"cache"`
	Sources struct {
		Timeout    time.Duration `yaml:"timeout"`
		RPS        float64       `yaml:"rps"`
		DailyQuota int64         `yaml:"daily_quota"`
		// Quotas overrides DailyQuota per source name.
		Quotas map[string]int64 `yaml:"quotas"`
	} `yaml:"sources"`
	Server struct {
		Port        string  `yaml:"port"`
		FrontendURL string  `yaml:"frontend_url"`
		ClientRPS   float64 `yaml:"client_rps"`
		ClientBurst int     `yaml:"client_burst"`
	} `yaml:"server"`
	Storage struct {
		RedisURL    string `yaml:"redis_url"`
		DatabaseURL string `yaml:"database_url"`
		SQLitePath  string `yaml:"sqlite_path"`
		KafkaBroker string `yaml:"kafka_broker"`
		KafkaTopic  string `yaml:"kafka_topic"`
	} `yaml:"storage"`
	Warm struct {
		Cron      string   `yaml:"cron"`
		Watchlist []string `yaml:"watchlist"`
	} `yaml:"warm"`
	SyntheticSeed uint64 `yaml:"synthetic_seed"`
}

// Load reads path (missing is fine), then .env, then environment overrides,
// then fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []error

	setString(&c.Providers.FinnhubKey, "FINNHUB_API_KEY")
	setString(&c.Providers.AlphaVantageKey, "ALPHA_VANTAGE_API_KEY")
	setString(&c.Providers.MassiveKey, "MASSIVE_API_KEY")
	setString(&c.Server.Port, "API_PORT")
	setString(&c.Server.FrontendURL, "FRONTEND_URL")
	setString(&c.Storage.RedisURL, "REDIS_URL")
	setString(&c.Storage.DatabaseURL, "DATABASE_URL")
	setString(&c.Storage.SQLitePath, "SQLITE_PATH")
	setString(&c.Storage.KafkaBroker, "KAFKA_BROKER")
	setString(&c.Storage.KafkaTopic, "KAFKA_TOPIC")
	setString(&c.Warm.Cron, "WARM_CRON")

	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Warm.Watchlist = splitList(v)
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		errs = append(errs, wrapEnv("CACHE_TTL", err))
		c.Cache.TTL = d
	}
	if v := os.Getenv("SOURCE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		errs = append(errs, wrapEnv("SOURCE_TIMEOUT", err))
		c.Sources.Timeout = d
	}
	if v := os.Getenv("CACHE_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		errs = append(errs, wrapEnv("CACHE_CAPACITY", err))
		c.Cache.Capacity = n
	}
	if v := os.Getenv("SOURCE_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		errs = append(errs, wrapEnv("SOURCE_RPS", err))
		c.Sources.RPS = f
	}
	if v := os.Getenv("DAILY_QUOTA"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		errs = append(errs, wrapEnv("DAILY_QUOTA", err))
		c.Sources.DailyQuota = n
	}
	if v := os.Getenv("SYNTHETIC_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		errs = append(errs, wrapEnv("SYNTHETIC_SEED", err))
		c.SyntheticSeed = n
	}
	return errors.Join(errs...)
}

func (c *Config) applyDefaults() {
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.Cache.Capacity == 0 {
		c.Cache.Capacity = 100
	}
	if c.Sources.Timeout == 0 {
		c.Sources.Timeout = 8 * time.Second
	}
	if c.Sources.RPS == 0 {
		c.Sources.RPS = 2
	}
	if c.Sources.Quotas == nil {
		// AlphaVantage's free tier allows 25 requests a day.
		c.Sources.Quotas = map[string]int64{"alphavantage": 25}
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ClientRPS == 0 {
		c.Server.ClientRPS = 5
	}
	if c.Server.ClientBurst == 0 {
		c.Server.ClientBurst = 10
	}
	if c.Storage.KafkaTopic == "" {
		c.Storage.KafkaTopic = "pulse.fetch-history"
	}
	if c.Warm.Cron == "" {
		c.Warm.Cron = "0 */5 * * * *"
	}
}

// Validate checks values that would make the engine misbehave.
func (c *Config) Validate() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	if c.Cache.Capacity <= 0 {
		return fmt.Errorf("cache.capacity must be positive")
	}
	if c.Sources.Timeout <= 0 {
		return fmt.Errorf("sources.timeout must be positive")
	}
	if c.Sources.RPS < 0 {
		return fmt.Errorf("sources.rps must not be negative")
	}
	if c.Sources.DailyQuota < 0 {
		return fmt.Errorf("sources.daily_quota must not be negative")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("server.port must be numeric: %q", c.Server.Port)
	}
	return nil
}

// AllowedOrigins is the CORS allow list.
func (c *Config) AllowedOrigins() []string {
	origins := []string{"http://localhost:3000"}
	if c.Server.FrontendURL != "" {
		origins = append(origins, c.Server.FrontendURL)
	}
	return origins
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func wrapEnv(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("env %s: %w", key, err)
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

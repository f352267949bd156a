package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the HireBridge server.
type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Store      StoreConfig
	Enrichment EnrichmentConfig
}

type ServerConfig struct {
	Port           int
	Env            string
	RequestsPerMin int
}

type RedisConfig struct {
	URL string // empty selects the in-process cache
}

type StoreConfig struct {
	SeedFile string // empty selects the built-in seed
}

type EnrichmentConfig struct {
	Strategy    string
	Timeout     time.Duration // deadline for a single strategy call
	WaitTimeout time.Duration // how long POST /job-postings waits before answering 202
	StatusTTL   time.Duration
	Canned      CannedConfig
	Remote      RemoteConfig
}

type CannedConfig struct {
	Delay       time.Duration
	PayloadFile string
}

type RemoteConfig struct {
	BaseURL        string
	APIKey         string
	RequestsPerSec float64
}

var validStrategies = map[string]bool{
	"canned": true,
	"rules":  true,
	"remote": true,
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any value is invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           envInt("HIREBRIDGE_PORT", 8080),
			Env:            envString("HIREBRIDGE_ENV", "development"),
			RequestsPerMin: envInt("RATE_LIMIT_PER_MIN", 120),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Store: StoreConfig{
			SeedFile: os.Getenv("SEED_FILE"),
		},
		Enrichment: EnrichmentConfig{
			Strategy:    envString("ENRICH_STRATEGY", "canned"),
			Timeout:     envDurationSecs("ENRICH_TIMEOUT_SECS", 60*time.Second),
			WaitTimeout: envDuration("ENRICH_WAIT_TIMEOUT", 30*time.Second),
			StatusTTL:   envDuration("ENRICH_STATUS_TTL", 30*time.Minute),
			Canned: CannedConfig{
				Delay:       envDuration("ENRICH_CANNED_DELAY", 5*time.Second),
				PayloadFile: os.Getenv("ENRICH_CANNED_FILE"),
			},
			Remote: RemoteConfig{
				BaseURL:        os.Getenv("ENRICH_REMOTE_URL"),
				APIKey:         os.Getenv("ENRICH_REMOTE_API_KEY"),
				RequestsPerSec: envFloat("ENRICH_REMOTE_RPS", 2),
			},
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("HIREBRIDGE_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Redis.URL != "" && !strings.HasPrefix(c.Redis.URL, "redis://") && !strings.HasPrefix(c.Redis.URL, "rediss://") {
		return fmt.Errorf("REDIS_URL must start with redis:// or rediss://, got %q", c.Redis.URL)
	}

	if !validStrategies[c.Enrichment.Strategy] {
		return fmt.Errorf("ENRICH_STRATEGY must be one of canned, rules, remote; got %q", c.Enrichment.Strategy)
	}
	if c.Enrichment.Timeout <= 0 {
		return fmt.Errorf("ENRICH_TIMEOUT_SECS must be positive")
	}

	if c.Enrichment.Strategy == "remote" {
		if c.Enrichment.Remote.BaseURL == "" {
			return fmt.Errorf("ENRICH_REMOTE_URL is required when ENRICH_STRATEGY is remote")
		}
		if !strings.HasPrefix(c.Enrichment.Remote.BaseURL, "http://") && !strings.HasPrefix(c.Enrichment.Remote.BaseURL, "https://") {
			return fmt.Errorf("ENRICH_REMOTE_URL must start with http:// or https://, got %q", c.Enrichment.Remote.BaseURL)
		}
		if c.Enrichment.Remote.RequestsPerSec <= 0 {
			return fmt.Errorf("ENRICH_REMOTE_RPS must be positive")
		}
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// VLMConfig holds the connection settings for the external vision-language
// model service that performs the actual field extraction.
type VLMConfig struct {
	Endpoint       string
	HealthEndpoint string
	Model          string
	APIKey         string
	Timeout        time.Duration
}

type Config struct {
	Host            string
	Port            string
	RequestTimeout  time.Duration
	MaxUploadSize   int64
	MaxRetries      int
	CacheCapacity   int
	AzureAccount    string
	AzureAccountKey string
	VLM             VLMConfig
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// AzureEnabled reports whether the optional Azure Blob fetcher is configured.
func (c *Config) AzureEnabled() bool {
	return c.AzureAccount != "" && c.AzureAccountKey != ""
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:            getEnvOrDefault("HOST", "0.0.0.0"),
		Port:            getEnvOrDefault("PORT", "8080"),
		RequestTimeout:  parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		MaxUploadSize:   parseIntOrDefault("MAX_UPLOAD_SIZE", 10*1024*1024), // 10MB
		MaxRetries:      int(parseIntOrDefault("MAX_RETRY_ATTEMPTS", 2)),
		CacheCapacity:   int(parseIntOrDefault("CACHE_CAPACITY", 128)),
		AzureAccount:    os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureAccountKey: os.Getenv("AZURE_STORAGE_KEY"),
		VLM: VLMConfig{
			Endpoint:       getEnvOrDefault("VLM_ENDPOINT", "http://localhost:11434/api/generate"),
			HealthEndpoint: getEnvOrDefault("VLM_HEALTH_ENDPOINT", "http://localhost:11434/api/tags"),
			Model:          getEnvOrDefault("VLM_MODEL", "llava:13b"),
			APIKey:         os.Getenv("VLM_API_KEY"),
			Timeout:        parseDurationOrDefault("EXTRACTION_TIMEOUT", 120*time.Second),
		},
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be > 0 (got %d)", cfg.MaxUploadSize)
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("MAX_RETRY_ATTEMPTS must be >= 0 (got %d)", cfg.MaxRetries)
	}
	if cfg.CacheCapacity <= 0 {
		return nil, fmt.Errorf("CACHE_CAPACITY must be > 0 (got %d)", cfg.CacheCapacity)
	}
	if cfg.RequestTimeout <= 0 || cfg.VLM.Timeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, extraction=%s)",
			cfg.RequestTimeout, cfg.VLM.Timeout)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// APIConfig holds the HTTP API server settings.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	// DefaultWindowSeconds is used when a summary request does not
	// carry an explicit window.
	DefaultWindowSeconds int `yaml:"default_window_seconds"`
}

// NATSConfig holds the packet transport settings.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// ClickHouseConfig holds the connection settings for the packet store
// queried by the fetch layer.
type ClickHouseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Table    string `yaml:"table"`
}

// BufferConfig bounds the in-memory live packet buffer.
type BufferConfig struct {
	MaxAge     string `yaml:"max_age"`
	MaxPackets int    `yaml:"max_packets"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	// Source selects the packet source for the API server:
	// "live" (NATS subscriber + buffer) or "clickhouse".
	Source     string           `yaml:"source"`
	API        APIConfig        `yaml:"api"`
	NATS       NATSConfig       `yaml:"nats"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
	Buffer     BufferConfig     `yaml:"buffer"`
}

// LoadConfig reads the configuration from a YAML file and returns a
// Config struct with defaults applied for unset fields.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Source == "" {
		c.Source = "live"
	}
	if c.API.ListenAddr == "" {
		c.API.ListenAddr = ":8080"
	}
	if c.API.DefaultWindowSeconds <= 0 {
		c.API.DefaultWindowSeconds = 900
	}
	if c.NATS.URL == "" {
		c.NATS.URL = "nats://127.0.0.1:4222"
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = "netglance.packets"
	}
	if c.Buffer.MaxAge == "" {
		c.Buffer.MaxAge = "15m"
	}
	if c.Buffer.MaxPackets <= 0 {
		c.Buffer.MaxPackets = 100000
	}
	if c.ClickHouse.Table == "" {
		c.ClickHouse.Table = "packets"
	}
}

// BufferMaxAge parses the configured buffer retention as a duration.
func (c *Config) BufferMaxAge() (time.Duration, error) {
	d, err := time.ParseDuration(c.Buffer.MaxAge)
	if err != nil {
		return 0, fmt.Errorf("invalid buffer max_age: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("buffer max_age must be a positive duration")
	}
	return d, nil
}

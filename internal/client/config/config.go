package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the debtkeeper CLI.
type Config struct {
	DatabasePath    string
	FlushInterval   time.Duration
	ShutdownTimeout time.Duration
	// GatewayAddr selects a standalone gateway over gRPC. Empty opens the
	// database in-process.
	GatewayAddr string
	LogLevel    string
	LogFormat   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "debtkeeper.db"
	c.FlushInterval = 5 * time.Second
	c.ShutdownTimeout = 3 * time.Second
	c.GatewayAddr = ""
	c.LogLevel = "info"
	c.LogFormat = "auto"
}

// LoadConfig builds a Config from defaults, the environment, an optional
// config file and the process's command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if cfg.FlushInterval <= 0 {
		return nil, fmt.Errorf("flush interval must be positive, got %s", cfg.FlushInterval)
	}
	return cfg, nil
}

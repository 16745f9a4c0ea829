// Package config handles configuration for the standalone gateway process:
// defaults, environment, an optional JSON or YAML file and command-line
// flags, applied in that order.
package config

import "os"

// Config holds runtime settings for the gateway.
type Config struct {
	EndpointAddrGRPC string
	DatabasePath     string
	LogLevel         string
	LogFormat        string
}

// LoadDefaults populates Config with defaults. The endpoint binds to
// loopback only; the gateway carries no authentication.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = "127.0.0.1:50061"
	c.DatabasePath = "debtkeeper.db"
	c.LogLevel = "info"
	c.LogFormat = "auto"
}

// LoadConfig builds a Config from defaults, DEBTKEEPER_GATEWAY_* variables
// (and .env), the file named by -c/-config and finally the flags in
// os.Args.
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
	return cfg, nil
}

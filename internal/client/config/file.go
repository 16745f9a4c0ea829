package config

import (
	"github.com/dmitrijs2005/debtkeeper/internal/flagx"
	"github.com/dmitrijs2005/debtkeeper/internal/timex"
)

// FileConfig is a DTO used exclusively for decoding the config file. After
// decoding, non-empty values are copied into the runtime Config.
type FileConfig struct {
	DatabasePath    string         `json:"database_path" yaml:"database_path"`
	FlushInterval   timex.Duration `json:"flush_interval" yaml:"flush_interval"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	GatewayAddr     string         `json:"gateway_addr" yaml:"gateway_addr"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
	LogFormat       string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c/-config in args, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	var fc FileConfig
	if err := flagx.DecodeConfigFile(path, &fc); err != nil {
		return err
	}

	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.FlushInterval.Duration != 0 {
		cfg.FlushInterval = fc.FlushInterval.Duration
	}
	if fc.ShutdownTimeout.Duration != 0 {
		cfg.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
	if fc.GatewayAddr != "" {
		cfg.GatewayAddr = fc.GatewayAddr
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	return nil
}

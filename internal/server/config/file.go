package config

import "github.com/dmitrijs2005/debtkeeper/internal/flagx"

// FileConfig is the on-disk form of Config.
type FileConfig struct {
	EndpointAddrGRPC string `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabasePath     string `json:"database_path" yaml:"database_path"`
	LogLevel         string `json:"log_level" yaml:"log_level"`
	LogFormat        string `json:"log_format" yaml:"log_format"`
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	var fc FileConfig
	if err := flagx.DecodeConfigFile(path, &fc); err != nil {
		return err
	}

	for dst, v := range map[*string]string{
		&cfg.EndpointAddrGRPC: fc.EndpointAddrGRPC,
		&cfg.DatabasePath:     fc.DatabasePath,
		&cfg.LogLevel:         fc.LogLevel,
		&cfg.LogFormat:        fc.LogFormat,
	} {
		if v != "" {
			*dst = v
		}
	}
	return nil
}

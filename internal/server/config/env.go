package config

import "github.com/dmitrijs2005/debtkeeper/internal/envx"

const (
	EnvEndpointAddrGRPC = "DEBTKEEPER_GATEWAY_ADDR"
	EnvDatabasePath     = "DEBTKEEPER_GATEWAY_DATABASE_PATH"
	EnvLogLevel         = "DEBTKEEPER_GATEWAY_LOG_LEVEL"
	EnvLogFormat        = "DEBTKEEPER_GATEWAY_LOG_FORMAT"
)

func parseEnv(cfg *Config) error {
	if err := envx.LoadDotEnv(); err != nil {
		return err
	}
	envx.String(EnvEndpointAddrGRPC, &cfg.EndpointAddrGRPC)
	envx.String(EnvDatabasePath, &cfg.DatabasePath)
	envx.String(EnvLogLevel, &cfg.LogLevel)
	envx.String(EnvLogFormat, &cfg.LogFormat)
	return nil
}

package config

import "github.com/dmitrijs2005/debtkeeper/internal/envx"

// Environment variables read by parseEnv.
const (
	EnvDatabasePath    = "DEBTKEEPER_DATABASE_PATH"
	EnvFlushInterval   = "DEBTKEEPER_FLUSH_INTERVAL"
	EnvShutdownTimeout = "DEBTKEEPER_SHUTDOWN_TIMEOUT"
	EnvGatewayAddr     = "DEBTKEEPER_GATEWAY_ADDR"
	EnvLogLevel        = "DEBTKEEPER_LOG_LEVEL"
	EnvLogFormat       = "DEBTKEEPER_LOG_FORMAT"
)

func parseEnv(cfg *Config) error {
	if err := envx.LoadDotEnv(); err != nil {
		return err
	}

	envx.String(EnvDatabasePath, &cfg.DatabasePath)
	envx.String(EnvGatewayAddr, &cfg.GatewayAddr)
	envx.String(EnvLogLevel, &cfg.LogLevel)
	envx.String(EnvLogFormat, &cfg.LogFormat)
	if err := envx.Duration(EnvFlushInterval, &cfg.FlushInterval); err != nil {
		return err
	}
	return envx.Duration(EnvShutdownTimeout, &cfg.ShutdownTimeout)
}

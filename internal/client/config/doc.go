// Package config loads runtime configuration for the debtkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory and DEBTKEEPER_* environment
//     variables (see parseEnv).
//  3. Optional JSON or YAML file selected via -c or -config (see parseFile).
//  4. Command-line flags (see parseFlags).
//
// Later sources override earlier ones; empty values never override.
//
// Supported flags
//
//	-d string   path of the SQLite database file
//	-i int      flush interval (seconds)
//	-g string   address of a standalone gateway; empty runs it in-process
//	-l string   log level (debug, info, warn, error)
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "5s" or integer
// nanoseconds:
//
//	{
//	  "database_path": "~/.debtkeeper/debtkeeper.db",
//	  "flush_interval": "5s",
//	  "shutdown_timeout": "3s",
//	  "gateway_addr": "",
//	  "log_level": "info",
//	  "log_format": "auto"
//	}
package config

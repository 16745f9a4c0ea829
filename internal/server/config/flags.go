package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/debtkeeper/internal/flagx"
)

// parseFlags populates Config from command-line flags:
//
//	-a string   gRPC bind address (e.g., "127.0.0.1:50061")
//	-d string   path of the SQLite database file
//	-l string   log level
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-l"})

	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run the gateway")
	fs.StringVar(&config.DatabasePath, "d", config.DatabasePath, "path of the database file")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	return nil
}

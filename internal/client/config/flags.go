package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// args are filtered with flagx.FilterArgs first, so flags owned by other
// layers (-c) do not cause parse errors.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-i", "-g", "-l"})

	fs := flag.NewFlagSet("debtkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the database file")
	flushInterval := fs.Int("i", int(cfg.FlushInterval.Seconds()), "flush interval (in seconds)")
	fs.StringVar(&cfg.GatewayAddr, "g", cfg.GatewayAddr, "address of a standalone gateway")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	if set(fs, "i") {
		cfg.FlushInterval = time.Duration(*flushInterval) * time.Second
	}
	return nil
}

func set(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

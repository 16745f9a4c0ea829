// Package app wires the debtkeeper client: it connects to the State
// Gateway, loads the state cache and runs the REPL next to the background
// flush scheduler. On exit or SIGINT/SIGTERM it performs the final forced
// flush before closing the gateway.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/debtkeeper/internal/client/cli"
	"github.com/dmitrijs2005/debtkeeper/internal/client/client"
	"github.com/dmitrijs2005/debtkeeper/internal/client/config"
	"github.com/dmitrijs2005/debtkeeper/internal/client/state"
	"github.com/dmitrijs2005/debtkeeper/internal/idgen"
	"github.com/dmitrijs2005/debtkeeper/internal/logging"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	gateway client.Gateway
	cache   *state.Cache
	in      io.Reader
	out     io.Writer
}

// NewApp connects to the gateway and loads the state. REPL input comes from
// in, its output goes to out and logs to logw.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logw io.Writer) (*App, error) {
	logger := logging.New(c.LogLevel, c.LogFormat, logw)

	gw, err := client.Connect(ctx, c.GatewayAddr, c.DatabasePath, logger)
	if err != nil {
		return nil, err
	}

	cache := state.New(gw, idgen.New(), logger, state.Options{
		FlushInterval:   c.FlushInterval,
		ShutdownTimeout: c.ShutdownTimeout,
	})
	if err := cache.Load(ctx); err != nil {
		_ = gw.Close()
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	return &App{config: c, logger: logger, gateway: gw, cache: cache, in: in, out: out}, nil
}

// Run serves the REPL until it exits, input ends, ctx is cancelled or a
// termination signal arrives. The final flush runs on a fresh context
// bounded by the configured shutdown timeout; its failure is logged only.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.cache.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return cli.NewApp(a.cache, a.in, a.out, a.logger).Run(gctx)
	})
	err := g.Wait()

	// the cache logs a failed final flush itself
	_ = a.cache.Shutdown(context.Background())

	if cerr := a.gateway.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}

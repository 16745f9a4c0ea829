// Package server runs the State Gateway as a standalone process: it opens
// the Record Store, serves the gateway over gRPC and shuts down gracefully
// on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/debtkeeper/internal/logging"
	"github.com/dmitrijs2005/debtkeeper/internal/server/config"
	"github.com/dmitrijs2005/debtkeeper/internal/server/gateway"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/debtkeeper/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	gateway *gateway.Gateway
}

// NewApp opens the database named in c. Logs go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger := logging.New(c.LogLevel, c.LogFormat, w)

	gw, err := gateway.Open(ctx, c.DatabasePath, logger)
	if err != nil {
		return nil, err
	}

	return &App{config: c, logger: logger, gateway: gw}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled or a signal arrives, then closes the
// database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting gateway...", "database", app.config.DatabasePath)
	app.initSignalHandler(ctx, cancelFunc)

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.gateway)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Run(gctx)
	})

	err := g.Wait()
	if cerr := app.gateway.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		app.logger.Error(ctx, "gateway stopped with error", "error", err)
		return err
	}
	app.logger.Info(ctx, "Gateway stopped")
	return nil
}

// Package grpc exposes a State Gateway over gRPC so the application state
// cache can run in a different process than the storage.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/debtkeeper/internal/logging"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
	pb "github.com/dmitrijs2005/debtkeeper/internal/proto"
	"google.golang.org/grpc"
)

// Gateway is the storage-side contract served over the wire.
type Gateway interface {
	Load(ctx context.Context) (models.Snapshot, error)
	Flush(ctx context.Context, snap models.Snapshot) error
	Status(ctx context.Context) models.DiagnosticInfo
}

type GRPCServer struct {
	pb.UnimplementedStateGatewayServer
	address string
	gateway Gateway
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, g Gateway) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		gateway: g,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	pb.RegisterStateGatewayServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}

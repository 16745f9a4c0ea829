package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/logging"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
	pb "github.com/dmitrijs2005/debtkeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.StateGatewayClient
	logger      logging.Logger
}

func NewGRPCClient(endpointURL string, logger logging.Logger, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, logger: logger.With("module", "grpc_client")}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewStateGatewayClient(conn)
	return nil
}

func (s *GRPCClient) Load(ctx context.Context) (models.Snapshot, error) {

	resp, err := s.client.Load(ctx, &emptypb.Empty{})
	if err != nil {
		return models.Snapshot{}, s.mapError(err)
	}

	return pb.DecodeLoadedSnapshot(resp)
}

func (s *GRPCClient) Flush(ctx context.Context, snap models.Snapshot) error {

	req, err := pb.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	if _, err := s.client.Flush(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

// Status asks the remote gateway for diagnostics. Transport failures collapse
// to a DiagnosticInfo that only names the endpoint.
func (s *GRPCClient) Status(ctx context.Context) models.DiagnosticInfo {

	unknown := models.DiagnosticInfo{StorageLocation: s.endpointURL}

	resp, err := s.client.Status(ctx, &emptypb.Empty{})
	if err != nil {
		s.logger.Warn(ctx, "status request failed", "error", err)
		return unknown
	}

	info, err := pb.DecodeDiagnostics(resp)
	if err != nil {
		s.logger.Warn(ctx, "status response malformed", "error", err)
		return unknown
	}
	return info
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrInvalidSnapshot, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.Canceled:
		return context.Canceled
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

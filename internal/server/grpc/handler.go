package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	pb "github.com/dmitrijs2005/debtkeeper/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func (s *GRPCServer) Load(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {

	snap, err := s.gateway.Load(ctx)
	if err != nil {
		s.logger.Error(ctx, "load failed", "error", err)
		return nil, toStatus(err)
	}

	out, err := pb.EncodeSnapshot(snap)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (s *GRPCServer) Flush(ctx context.Context, req *wrapperspb.BytesValue) (*emptypb.Empty, error) {

	snap, err := pb.DecodeSnapshot(req)
	if err != nil {
		s.logger.Warn(ctx, "rejected flush payload", "error", err)
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := s.gateway.Flush(ctx, snap); err != nil {
		s.logger.Error(ctx, "flush failed", "error", err)
		return nil, toStatus(err)
	}

	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Status(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {

	out, err := pb.EncodeDiagnostics(s.gateway.Status(ctx))
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidSnapshot):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrStorageUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

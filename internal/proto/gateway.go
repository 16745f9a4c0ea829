// Package proto describes the StateGateway gRPC service.
//
// The service carries its payloads as JSON inside protobuf well-known
// wrapper types: Load and Status answer with a google.protobuf.BytesValue
// holding a JSON Snapshot or DiagnosticInfo, Flush accepts one holding a JSON
// Snapshot. Both ends decode and validate the JSON on receipt with
// DecodeSnapshot, so a malformed payload never reaches storage.
package proto

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "debtkeeper.gateway.v1.StateGateway"

const (
	StateGateway_Load_FullMethodName   = "/" + ServiceName + "/Load"
	StateGateway_Flush_FullMethodName  = "/" + ServiceName + "/Flush"
	StateGateway_Status_FullMethodName = "/" + ServiceName + "/Status"
)

// StateGatewayClient is the client API for the StateGateway service.
type StateGatewayClient interface {
	Load(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Flush(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Status(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type stateGatewayClient struct {
	cc grpc.ClientConnInterface
}

func NewStateGatewayClient(cc grpc.ClientConnInterface) StateGatewayClient {
	return &stateGatewayClient{cc}
}

func (c *stateGatewayClient) Load(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, StateGateway_Load_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *stateGatewayClient) Flush(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, StateGateway_Flush_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *stateGatewayClient) Status(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, StateGateway_Status_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// StateGatewayServer is the server API for the StateGateway service.
// Implementations must embed UnimplementedStateGatewayServer.
type StateGatewayServer interface {
	Load(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
	Flush(context.Context, *wrapperspb.BytesValue) (*emptypb.Empty, error)
	Status(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
	mustEmbedUnimplementedStateGatewayServer()
}

type UnimplementedStateGatewayServer struct{}

func (UnimplementedStateGatewayServer) Load(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Load not implemented")
}
func (UnimplementedStateGatewayServer) Flush(context.Context, *wrapperspb.BytesValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Flush not implemented")
}
func (UnimplementedStateGatewayServer) Status(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Status not implemented")
}
func (UnimplementedStateGatewayServer) mustEmbedUnimplementedStateGatewayServer() {}

func RegisterStateGatewayServer(s grpc.ServiceRegistrar, srv StateGatewayServer) {
	s.RegisterService(&StateGateway_ServiceDesc, srv)
}

func _StateGateway_Load_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StateGatewayServer).Load(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: StateGateway_Load_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StateGatewayServer).Load(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _StateGateway_Flush_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StateGatewayServer).Flush(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: StateGateway_Flush_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StateGatewayServer).Flush(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _StateGateway_Status_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StateGatewayServer).Status(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: StateGateway_Status_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StateGatewayServer).Status(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// StateGateway_ServiceDesc is the grpc.ServiceDesc for the StateGateway service.
var StateGateway_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StateGatewayServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Load", Handler: _StateGateway_Load_Handler},
		{MethodName: "Flush", Handler: _StateGateway_Flush_Handler},
		{MethodName: "Status", Handler: _StateGateway_Status_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "debtkeeper/gateway/v1/gateway.proto",
}

// EncodeSnapshot wraps the canonical JSON form of s.
func EncodeSnapshot(s models.Snapshot) (*wrapperspb.BytesValue, error) {
	b, err := s.Serialize()
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bytes(b), nil
}

// DecodeSnapshot parses a JSON Snapshot payload meant to be flushed and
// checks it with Snapshot.Validate. Unknown fields are rejected; every error
// wraps common.ErrInvalidSnapshot.
func DecodeSnapshot(v *wrapperspb.BytesValue) (models.Snapshot, error) {
	s, err := decodeSnapshot(v)
	if err != nil {
		return s, err
	}
	return s, s.Validate()
}

// DecodeLoadedSnapshot parses a Load response. It checks the payload with
// Snapshot.ValidateStored, so legacy transactions without an id reach the
// client's migration instead of failing the load.
func DecodeLoadedSnapshot(v *wrapperspb.BytesValue) (models.Snapshot, error) {
	s, err := decodeSnapshot(v)
	if err != nil {
		return s, err
	}
	return s, s.ValidateStored()
}

func decodeSnapshot(v *wrapperspb.BytesValue) (models.Snapshot, error) {
	var s models.Snapshot
	if v == nil || len(v.GetValue()) == 0 {
		return s, fmt.Errorf("%w: empty payload", common.ErrInvalidSnapshot)
	}
	dec := json.NewDecoder(bytes.NewReader(v.GetValue()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return s, fmt.Errorf("%w: %w", common.ErrInvalidSnapshot, err)
	}
	return s, nil
}

// EncodeDiagnostics wraps the JSON form of info.
func EncodeDiagnostics(info models.DiagnosticInfo) (*wrapperspb.BytesValue, error) {
	b, err := json.Marshal(info)
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bytes(b), nil
}

// DecodeDiagnostics parses a JSON DiagnosticInfo payload.
func DecodeDiagnostics(v *wrapperspb.BytesValue) (models.DiagnosticInfo, error) {
	var info models.DiagnosticInfo
	if err := json.Unmarshal(v.GetValue(), &info); err != nil {
		return info, fmt.Errorf("malformed diagnostics: %w", err)
	}
	return info, nil
}

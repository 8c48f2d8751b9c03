package control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Full method names of ControlService. The messages are protobuf well-known
// types, so no generated code is involved.
const (
	ServiceName = "aegis.desktop.v1.ControlService"

	InvokeFullMethodName   = "/" + ServiceName + "/Invoke"
	GetStateFullMethodName = "/" + ServiceName + "/GetState"
)

// ControlServiceServer is the server interface for ControlService.
type ControlServiceServer interface {
	// Invoke runs the named UI command. The result is a struct with a
	// "value" field and, on failure, an "error" string.
	Invoke(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// GetState returns the lifecycle state as a struct with "window",
	// "server" and "exiting" fields.
	GetState(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterControlServiceServer registers srv with the gRPC server.
func RegisterControlServiceServer(s grpc.ServiceRegistrar, srv ControlServiceServer) {
	s.RegisterService(&controlServiceDesc, srv)
}

var controlServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ControlServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Invoke", Handler: invokeHandler},
		{MethodName: "GetState", Handler: getStateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "aegis/desktop/v1/control.proto",
}

func invokeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServiceServer).Invoke(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: InvokeFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ControlServiceServer).Invoke(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func getStateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServiceServer).GetState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetStateFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ControlServiceServer).GetState(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

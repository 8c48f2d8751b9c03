// Package control exposes the shell's command surface as a loopback gRPC
// service so that the CLI can drive a running shell.
package control

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/aegis-privacy/aegis-desktop/internal/desktop/lifecycle"
)

// Host is the loopback address the control endpoint binds to.
const Host = "127.0.0.1"

// Invoker runs UI commands by name.
type Invoker interface {
	Invoke(ctx context.Context, name string) lifecycle.Response
}

// StateSource provides the lifecycle state.
type StateSource interface {
	State() lifecycle.State
}

// StateView is the wire form of lifecycle.State.
type StateView struct {
	Window  string
	Server  string
	Exiting bool
}

// NewStateView converts a lifecycle state for the wire.
func NewStateView(s lifecycle.State) StateView {
	return StateView{
		Window:  s.Window.String(),
		Server:  s.Server.String(),
		Exiting: s.Exiting,
	}
}

// Server is the shell's gRPC control server.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	port       int
}

// New creates a server listening on the loopback interface.
// Pass port 0 for dynamic allocation.
func New(port int, invoker Invoker, states StateSource) (*Server, error) {
	listener, err := (&net.ListenConfig{}).Listen(context.TODO(), "tcp", fmt.Sprintf("%s:%d", Host, port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	grpcServer := grpc.NewServer()
	RegisterControlServiceServer(grpcServer, &controlService{invoker: invoker, states: states})

	return &Server{
		grpcServer: grpcServer,
		listener:   listener,
		port:       listener.Addr().(*net.TCPAddr).Port,
	}, nil
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// Serve starts serving requests. This blocks until Stop is called.
func (s *Server) Serve() error {
	return s.grpcServer.Serve(s.listener)
}

// Stop gracefully stops the server.
func (s *Server) Stop() {
	s.grpcServer.GracefulStop()
}

type controlService struct {
	invoker Invoker
	states  StateSource
}

func (s *controlService) Invoke(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	resp := s.invoker.Invoke(ctx, req.GetValue())
	out, err := responseToStruct(resp)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode %s result: %v", req.GetValue(), err)
	}
	return out, nil
}

func (s *controlService) GetState(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	view := NewStateView(s.states.State())
	out, err := structpb.NewStruct(map[string]any{
		"window":  view.Window,
		"server":  view.Server,
		"exiting": view.Exiting,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode state: %v", err)
	}
	return out, nil
}

func responseToStruct(resp lifecycle.Response) (*structpb.Struct, error) {
	fields := map[string]any{"value": resp.Value}
	if resp.Error != "" {
		fields["error"] = resp.Error
	}
	return structpb.NewStruct(fields)
}

func structToResponse(s *structpb.Struct) lifecycle.Response {
	fields := s.GetFields()
	var resp lifecycle.Response
	if v, ok := fields["value"]; ok {
		resp.Value = v.AsInterface()
	}
	if v, ok := fields["error"]; ok {
		resp.Error = v.GetStringValue()
	}
	return resp
}

package control

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/aegis-privacy/aegis-desktop/internal/desktop/lifecycle"
)

// Client talks to a running shell's control service.
type Client struct {
	conn *grpc.ClientConn
}

// Dial creates a client for the control service at host:port. The
// connection is established lazily on the first call.
func Dial(host string, port int) (*Client, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to desktop: %w", err)
	}
	return &Client{conn: conn}, nil
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Invoke runs a command on the shell. The returned error covers transport
// failures only; command failures are carried in Response.Error.
func (c *Client) Invoke(ctx context.Context, name string) (lifecycle.Response, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, InvokeFullMethodName, wrapperspb.String(name), out); err != nil {
		return lifecycle.Response{}, fmt.Errorf("control request %s: %w", name, err)
	}
	return structToResponse(out), nil
}

// State returns the shell's lifecycle state.
func (c *Client) State(ctx context.Context) (StateView, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, GetStateFullMethodName, &emptypb.Empty{}, out); err != nil {
		return StateView{}, fmt.Errorf("control request state: %w", err)
	}

	fields := out.GetFields()
	return StateView{
		Window:  fields["window"].GetStringValue(),
		Server:  fields["server"].GetStringValue(),
		Exiting: fields["exiting"].GetBoolValue(),
	}, nil
}

package lifecycle

import (
	"context"
	"fmt"
)

// Command names invoked by the UI layer.
const (
	CmdCheckAPIHealth  = "check_api_health"
	CmdGetSystemStatus = "get_system_status"
	CmdStartAPI        = "start_api"
	CmdStopAPI         = "stop_api"
)

// Response is the result of a UI command. Errors cross the boundary as
// strings only.
type Response struct {
	Value any    `json:"value"`
	Error string `json:"error,omitempty"`
}

// OK reports whether the command succeeded.
func (r Response) OK() bool {
	return r.Error == ""
}

// Commands is the command surface exposed to the UI layer.
type Commands struct {
	c *Controller
}

// Commands returns the command surface bound to this controller.
func (c *Controller) Commands() *Commands {
	return &Commands{c: c}
}

// CheckAPIHealth reports whether the companion server answers its health
// endpoint.
func (cmd *Commands) CheckAPIHealth(ctx context.Context) (bool, error) {
	return cmd.c.probe.CheckHealth(ctx)
}

// GetSystemStatus returns the companion server's raw status payload.
func (cmd *Commands) GetSystemStatus(ctx context.Context) (string, error) {
	return cmd.c.probe.Status(ctx)
}

// StartAPI starts the companion server; it is a no-op success if one is
// already stored. After Quit it fails with ErrExiting.
func (cmd *Commands) StartAPI() (bool, error) {
	return cmd.c.startAPI()
}

// StopAPI stops the companion server.
func (cmd *Commands) StopAPI() error {
	return cmd.c.stopAPI()
}

// Invoke runs a command by name and flattens any error into the response.
func (cmd *Commands) Invoke(ctx context.Context, name string) Response {
	var (
		value any
		err   error
	)
	switch name {
	case CmdCheckAPIHealth:
		value, err = cmd.CheckAPIHealth(ctx)
	case CmdGetSystemStatus:
		value, err = cmd.GetSystemStatus(ctx)
	case CmdStartAPI:
		value, err = cmd.StartAPI()
	case CmdStopAPI:
		err = cmd.StopAPI()
	default:
		err = fmt.Errorf("unknown command: %s", name)
	}

	if err != nil {
		return Response{Error: err.Error()}
	}
	return Response{Value: value}
}

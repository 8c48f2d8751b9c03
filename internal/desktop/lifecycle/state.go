package lifecycle

// WindowState is the visibility of the main window.
type WindowState int

const (
	WindowHidden WindowState = iota
	WindowVisible
)

func (s WindowState) String() string {
	if s == WindowVisible {
		return "visible"
	}
	return "hidden"
}

// ServerState is the controller's view of the companion server.
type ServerState int

const (
	ServerUnknown ServerState = iota // no start attempted yet
	ServerStarted
	ServerStopped
)

func (s ServerState) String() string {
	switch s {
	case ServerStarted:
		return "started"
	case ServerStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// State is a snapshot of the observable lifecycle state.
type State struct {
	Window  WindowState
	Server  ServerState
	Exiting bool
}

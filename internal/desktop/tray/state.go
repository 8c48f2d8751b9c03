// Package tray implements the system tray icon and menu of the desktop shell.
package tray

import (
	"fmt"

	"github.com/aegis-privacy/aegis-desktop/internal/desktop/lifecycle"
	"github.com/aegis-privacy/aegis-desktop/internal/models"
)

// Dispatcher receives the events produced by tray interaction.
type Dispatcher interface {
	Dispatch(ev lifecycle.Event) bool
}

// StateSource provides the lifecycle state shown in the menu.
type StateSource interface {
	State() lifecycle.State
}

// Tooltip is shown when hovering the tray icon.
const Tooltip = "AEGIS Privacy Suite"

// Menu item titles, keyed by lifecycle menu identifier.
var menuTitles = map[string]string{
	lifecycle.MenuShow:   "Show Dashboard",
	lifecycle.MenuStatus: "System Status",
	lifecycle.MenuQuit:   "Quit AEGIS",
}

func formatServerLabel(s lifecycle.State) string {
	switch s.Server {
	case lifecycle.ServerStarted:
		return fmt.Sprintf("API: running on %s", models.ServerAddress())
	case lifecycle.ServerStopped:
		return "API: stopped"
	default:
		return "API: starting..."
	}
}

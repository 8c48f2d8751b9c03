package lifecycle

import (
	"github.com/google/uuid"
)

// EventKind identifies an application event routed through the Controller.
type EventKind int

// Application events.
const (
	EventLaunch EventKind = iota
	EventShowDashboard
	EventSystemStatus
	EventTrayClick
	EventQuit
	EventCloseRequested
	EventStartAPI
	EventStopAPI
)

// Tray menu item identifiers.
const (
	MenuQuit   = "quit"
	MenuShow   = "show"
	MenuStatus = "status"
)

// StatusRoute is the dashboard view opened by the "System Status" action.
const StatusRoute = "/status"

var eventNames = map[EventKind]string{
	EventLaunch:         "launch",
	EventShowDashboard:  "show-dashboard",
	EventSystemStatus:   "system-status",
	EventTrayClick:      "tray-click",
	EventQuit:           "quit",
	EventCloseRequested: "close-requested",
	EventStartAPI:       "start-api",
	EventStopAPI:        "stop-api",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is a message dispatched into the Controller. ID correlates the log
// lines of one dispatch.
type Event struct {
	ID   string
	Kind EventKind
}

// NewEvent creates an event with a fresh ID.
func NewEvent(kind EventKind) Event {
	return Event{ID: uuid.New().String(), Kind: kind}
}

// EventFromMenuID maps a tray menu identifier to its event.
func EventFromMenuID(id string) (Event, bool) {
	switch id {
	case MenuQuit:
		return NewEvent(EventQuit), true
	case MenuShow:
		return NewEvent(EventShowDashboard), true
	case MenuStatus:
		return NewEvent(EventSystemStatus), true
	default:
		return Event{}, false
	}
}

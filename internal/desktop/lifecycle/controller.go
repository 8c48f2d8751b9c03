// Package lifecycle routes application events (startup, tray actions, window
// close, UI commands) to the supervisor, the window and the health probe.
//
// Callbacks from the tray and window layers only build an Event and call
// Dispatch; they hold no logic of their own.
package lifecycle

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"

	"github.com/aegis-privacy/aegis-desktop/internal/models"
)

// ErrExiting is returned by server commands that arrive after Quit.
var ErrExiting = errors.New("application is exiting")

// Supervisor is the process supervision the controller drives.
type Supervisor interface {
	Start() (bool, error)
	Stop() error
	Shutdown()
	IsRunning() bool
}

// HealthChecker queries the companion server.
type HealthChecker interface {
	CheckHealth(ctx context.Context) (bool, error)
	Status(ctx context.Context) (string, error)
}

// Window is the window-control capability of the UI toolkit.
type Window interface {
	Show() error
	Focus() error
	Hide() error
	Navigate(route string) error
}

// Options configures a Controller.
type Options struct {
	Window        Window
	Exit          func(code int) // defaults to os.Exit
	StartOnLaunch bool
}

// Controller owns the lifecycle state machine.
type Controller struct {
	sup   Supervisor
	probe HealthChecker

	// opMu serializes supervisor calls with the state recorded for them, so
	// a start racing Quit either finishes before Shutdown or is refused.
	opMu sync.Mutex

	mu            sync.RWMutex
	window        Window
	exit          func(code int)
	startOnLaunch bool
	state         State
}

// New creates a controller in the initial state (window hidden, server
// unknown).
func New(sup Supervisor, probe HealthChecker, opts Options) *Controller {
	exit := opts.Exit
	if exit == nil {
		exit = os.Exit
	}
	return &Controller{
		sup:           sup,
		probe:         probe,
		window:        opts.Window,
		exit:          exit,
		startOnLaunch: opts.StartOnLaunch,
	}
}

// AttachWindow sets the window once the UI toolkit has created it.
func (c *Controller) AttachWindow(w Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.window = w
}

// State returns a snapshot of the current state. The server state follows
// the supervisor: a stored handle reads as started, an empty slot as stopped
// once any start or stop has been attempted.
func (c *Controller) State() State {
	running := c.sup.IsRunning()

	c.mu.RLock()
	s := c.state
	c.mu.RUnlock()

	switch {
	case running:
		s.Server = ServerStarted
	case s.Server != ServerUnknown:
		s.Server = ServerStopped
	}
	return s
}

func (c *Controller) exiting() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Exiting
}

// Dispatch handles one event. The return value tells the caller whether to
// suppress the toolkit's default action; only a close request is suppressed.
// Events arriving after Quit are ignored.
func (c *Controller) Dispatch(ev Event) (preventDefault bool) {
	if c.exiting() {
		c.logf(ev, "ignored, application is exiting")
		return false
	}

	switch ev.Kind {
	case EventLaunch:
		c.launch(ev)
	case EventShowDashboard, EventTrayClick:
		c.reveal(ev, "")
	case EventSystemStatus:
		c.reveal(ev, StatusRoute)
	case EventQuit:
		c.quit(ev)
	case EventCloseRequested:
		c.hide(ev)
		return true
	case EventStartAPI:
		if _, err := c.startAPI(); err != nil {
			c.logf(ev, "start failed: %v", err)
		}
	case EventStopAPI:
		if err := c.stopAPI(); err != nil {
			c.logf(ev, "stop failed: %v", err)
		}
	default:
		c.logf(ev, "unhandled event kind %d", ev.Kind)
	}
	return false
}

func (c *Controller) launch(ev Event) {
	c.mu.RLock()
	autoStart := c.startOnLaunch
	c.mu.RUnlock()

	if !autoStart {
		c.logf(ev, "automatic start disabled")
		return
	}

	ok, err := c.startAPI()
	switch {
	case err != nil:
		log.Printf("Warning: Could not start API server automatically: %v", err)
	case ok:
		log.Printf("AEGIS API server started on %s", models.ServerAddress())
	default:
		log.Printf("Warning: Could not start API server automatically")
	}
}

// reveal shows and focuses the window, then optionally navigates to route.
func (c *Controller) reveal(ev Event, route string) {
	c.mu.Lock()
	w := c.window
	if w != nil {
		c.state.Window = WindowVisible
	}
	c.mu.Unlock()

	if w == nil {
		c.logf(ev, "no window attached")
		return
	}

	if err := w.Show(); err != nil {
		c.logf(ev, "show window: %v", err)
	}
	if err := w.Focus(); err != nil {
		c.logf(ev, "focus window: %v", err)
	}
	if route != "" {
		if err := w.Navigate(route); err != nil {
			c.logf(ev, "navigate to %s: %v", route, err)
		}
	}
}

// hide converts a close request into hiding the window. The companion keeps
// running; only Quit stops it.
func (c *Controller) hide(ev Event) {
	c.mu.Lock()
	w := c.window
	c.state.Window = WindowHidden
	c.mu.Unlock()

	if w == nil {
		return
	}
	if err := w.Hide(); err != nil {
		c.logf(ev, "hide window: %v", err)
	}
}

// quit stops the companion before exiting so the child never outlives us.
func (c *Controller) quit(ev Event) {
	c.mu.Lock()
	if c.state.Exiting {
		c.mu.Unlock()
		return
	}
	c.state.Exiting = true
	exit := c.exit
	c.mu.Unlock()

	c.logf(ev, "stopping companion server")
	c.opMu.Lock()
	c.sup.Shutdown()
	c.mu.Lock()
	c.state.Server = ServerStopped
	c.mu.Unlock()
	c.opMu.Unlock()

	exit(0)
}

func (c *Controller) startAPI() (bool, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.exiting() {
		return false, ErrExiting
	}

	ok, err := c.sup.Start()
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	if ok {
		c.state.Server = ServerStarted
	} else {
		c.state.Server = ServerStopped
	}
	c.mu.Unlock()
	return ok, nil
}

func (c *Controller) stopAPI() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.sup.Stop(); err != nil {
		return err
	}

	c.mu.Lock()
	c.state.Server = ServerStopped
	c.mu.Unlock()
	return nil
}

// logf logs a message with the event context.
func (c *Controller) logf(ev Event, format string, args ...interface{}) {
	id := ev.ID
	if len(id) > 8 {
		id = id[:8]
	}
	log.Printf("[event:%s %s] "+format, append([]interface{}{id, ev.Kind}, args...)...)
}

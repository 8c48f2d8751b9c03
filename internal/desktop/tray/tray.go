package tray

import (
	"log"
	"time"

	"github.com/getlantern/systray"

	"github.com/aegis-privacy/aegis-desktop/internal/desktop/lifecycle"
)

const refreshInterval = 2 * time.Second

// Tray owns the systray menu. Clicks are translated into lifecycle events;
// systray does not report plain icon clicks on every platform, so left-click
// events come from the menu only.
type Tray struct {
	dispatcher Dispatcher
	source     StateSource
	onStart    func()
	onExit     func()

	serverItem *systray.MenuItem
	showItem   *systray.MenuItem
	statusItem *systray.MenuItem
	quitItem   *systray.MenuItem
	done       chan struct{}
}

// New creates a tray. onStart runs once the tray is ready; onExit runs when the
// tray loop ends.
func New(d Dispatcher, source StateSource, onStart, onExit func()) *Tray {
	return &Tray{
		dispatcher: d,
		source:     source,
		onStart:    onStart,
		onExit:     onExit,
		done:       make(chan struct{}),
	}
}

// Run starts the system tray. This blocks the calling goroutine (must be main).
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon(iconData)
	systray.SetTooltip(Tooltip)

	header := systray.AddMenuItem(Tooltip, "")
	header.Disable()

	t.serverItem = systray.AddMenuItem(formatServerLabel(lifecycle.State{}), "")
	t.serverItem.Disable()

	systray.AddSeparator()

	t.showItem = systray.AddMenuItem(menuTitles[lifecycle.MenuShow], "Open the AEGIS dashboard")
	t.statusItem = systray.AddMenuItem(menuTitles[lifecycle.MenuStatus], "Open the system status view")

	systray.AddSeparator()

	t.quitItem = systray.AddMenuItem(menuTitles[lifecycle.MenuQuit], "Stop the API server and quit")

	if t.onStart != nil {
		t.onStart()
	}
	t.refresh()

	go t.handleClicks()
	go t.refreshLoop()
}

func (t *Tray) onQuit() {
	close(t.done)
	if t.onExit != nil {
		t.onExit()
	}
}

func (t *Tray) handleClicks() {
	for {
		select {
		case <-t.done:
			return
		case <-t.showItem.ClickedCh:
			t.dispatchMenu(lifecycle.MenuShow)
		case <-t.statusItem.ClickedCh:
			t.dispatchMenu(lifecycle.MenuStatus)
		case <-t.quitItem.ClickedCh:
			t.dispatchMenu(lifecycle.MenuQuit)
		}
	}
}

func (t *Tray) dispatchMenu(id string) {
	ev, ok := lifecycle.EventFromMenuID(id)
	if !ok {
		log.Printf("Warning: unknown tray menu item %q", id)
		return
	}
	t.dispatcher.Dispatch(ev)
	t.refresh()
}

func (t *Tray) refreshLoop() {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.refresh()
		}
	}
}

func (t *Tray) refresh() {
	if t.source == nil || t.serverItem == nil {
		return
	}
	t.serverItem.SetTitle(formatServerLabel(t.source.State()))
}

// Package window provides the window-control capability used by the
// lifecycle controller. The dashboard is rendered by the companion server, so
// the "main window" is a tab in the user's default browser.
package window

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/pkg/browser"
)

// defaultOpenDelay is how long Show waits before opening, so that a Navigate
// in the same reveal lands in the same tab.
const defaultOpenDelay = 150 * time.Millisecond

// Browser shows the dashboard in the default browser.
//
// A browser tab cannot be inspected, hidden or focused from outside. Every
// Show therefore opens a tab, since the user may have closed the previous
// one. Show and Navigate calls that arrive within the open delay collapse
// into a single open at the last requested route.
type Browser struct {
	mu      sync.Mutex
	baseURL string
	route   string
	delay   time.Duration
	pending *time.Timer
	open    func(url string) error
}

// Option configures a Browser.
type Option func(*Browser)

// WithOpener replaces the function that opens a URL.
func WithOpener(open func(url string) error) Option {
	return func(b *Browser) {
		b.open = open
	}
}

// WithOpenDelay sets how long opens are held back for coalescing.
func WithOpenDelay(d time.Duration) Option {
	return func(b *Browser) {
		b.delay = d
	}
}

// NewBrowser creates a browser window for the dashboard at baseURL.
func NewBrowser(baseURL string, opts ...Option) *Browser {
	b := &Browser{
		baseURL: strings.TrimRight(baseURL, "/"),
		route:   "/",
		delay:   defaultOpenDelay,
		open:    browser.OpenURL,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Show schedules the dashboard to open at the current route.
func (b *Browser) Show() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scheduleLocked()
	return nil
}

// Focus is a no-op; the browser decides which tab has focus.
func (b *Browser) Focus() error {
	return nil
}

// Hide cancels an open that has not happened yet.
func (b *Browser) Hide() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
	return nil
}

// Navigate moves to route. A pending open is redirected to route; otherwise a
// new open is scheduled.
func (b *Browser) Navigate(route string) error {
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.route = route
	b.scheduleLocked()
	return nil
}

// Route returns the route the next open uses.
func (b *Browser) Route() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.route
}

func (b *Browser) scheduleLocked() {
	if b.pending != nil {
		return
	}
	b.pending = time.AfterFunc(b.delay, b.flush)
}

// flush performs the pending open, if one is still scheduled.
func (b *Browser) flush() {
	b.mu.Lock()
	if b.pending == nil {
		b.mu.Unlock()
		return
	}
	b.pending.Stop()
	b.pending = nil
	url := b.baseURL + b.route
	b.mu.Unlock()

	if err := b.open(url); err != nil {
		log.Printf("Warning: %v", fmt.Errorf("open %s: %w", url, err))
		return
	}
	log.Printf("Opened dashboard at %s", url)
}

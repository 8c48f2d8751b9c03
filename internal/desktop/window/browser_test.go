package window

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

type openRecorder struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (r *openRecorder) open(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, url)
	return r.err
}

func (r *openRecorder) URLs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.opened...)
}

// newTestBrowser holds opens back for an hour so tests flush them by hand.
func newTestBrowser(base string) (*Browser, *openRecorder) {
	rec := &openRecorder{}
	return NewBrowser(base, WithOpener(rec.open), WithOpenDelay(time.Hour)), rec
}

func TestBrowserShowFocusNavigateOpensOneTab(t *testing.T) {
	b, rec := newTestBrowser("http://localhost:4243/")

	_ = b.Show()
	_ = b.Focus()
	_ = b.Navigate("/status")
	b.flush()

	want := []string{"http://localhost:4243/status"}
	if got := rec.URLs(); !reflect.DeepEqual(got, want) {
		t.Errorf("opened = %v, want %v", got, want)
	}
}

func TestBrowserRepeatedShowCoalesces(t *testing.T) {
	b, rec := newTestBrowser("http://localhost:4243")

	for i := 0; i < 3; i++ {
		_ = b.Show()
		_ = b.Focus()
	}
	b.flush()
	b.flush()

	want := []string{"http://localhost:4243/"}
	if got := rec.URLs(); !reflect.DeepEqual(got, want) {
		t.Errorf("opened = %v, want %v", got, want)
	}
}

func TestBrowserShowReopensAfterOpen(t *testing.T) {
	b, rec := newTestBrowser("http://localhost:4243")

	_ = b.Show()
	b.flush()
	_ = b.Show()
	b.flush()

	if got := len(rec.URLs()); got != 2 {
		t.Errorf("opened %d times, want 2", got)
	}
}

func TestBrowserHideCancelsPendingOpen(t *testing.T) {
	b, rec := newTestBrowser("http://localhost:4243")

	_ = b.Show()
	_ = b.Hide()
	b.flush()

	if got := rec.URLs(); len(got) != 0 {
		t.Errorf("opened = %v after hide, want nothing", got)
	}
}

func TestBrowserNavigateKeepsRoute(t *testing.T) {
	b, rec := newTestBrowser("http://localhost:4243")

	_ = b.Navigate("status")
	b.flush()
	if got := b.Route(); got != "/status" {
		t.Errorf("Route = %q, want /status", got)
	}

	_ = b.Show()
	b.flush()
	want := []string{"http://localhost:4243/status", "http://localhost:4243/status"}
	if got := rec.URLs(); !reflect.DeepEqual(got, want) {
		t.Errorf("opened = %v, want %v", got, want)
	}
}

func TestBrowserOpensAfterDelay(t *testing.T) {
	opened := make(chan string, 4)
	b := NewBrowser("http://localhost:4243",
		WithOpenDelay(10*time.Millisecond),
		WithOpener(func(url string) error {
			opened <- url
			return nil
		}),
	)

	_ = b.Show()
	_ = b.Navigate("/status")

	select {
	case url := <-opened:
		if url != "http://localhost:4243/status" {
			t.Errorf("opened %q, want the status route", url)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("dashboard never opened")
	}

	select {
	case url := <-opened:
		t.Errorf("second open of %q", url)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBrowserOpenFailureIsLogged(t *testing.T) {
	b, rec := newTestBrowser("http://localhost:4243")
	rec.err = errors.New("no browser")

	if err := b.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}
	b.flush()

	if got := len(rec.URLs()); got != 1 {
		t.Errorf("open attempts = %d, want 1", got)
	}
}

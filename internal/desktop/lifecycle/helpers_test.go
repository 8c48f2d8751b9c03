package lifecycle

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aegis-privacy/aegis-desktop/internal/desktop/supervisor"
)

type stubHandle struct {
	pid   int
	kills atomic.Int32
}

func (h *stubHandle) Pid() int { return h.pid }

func (h *stubHandle) Kill() error {
	h.kills.Add(1)
	return nil
}

type stubSpawner struct {
	mu      sync.Mutex
	handles []*stubHandle
	panicV  any
}

func (s *stubSpawner) Spawn(string) (supervisor.Handle, error) {
	if s.panicV != nil {
		panic(s.panicV)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &stubHandle{pid: 4000 + len(s.handles)}
	s.handles = append(s.handles, h)
	return h, nil
}

func (s *stubSpawner) spawns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

type fakeWindow struct {
	mu     sync.Mutex
	calls  []string
	failOn string
}

func (w *fakeWindow) record(call string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, call)
	if call == w.failOn {
		return errors.New("window gone")
	}
	return nil
}

func (w *fakeWindow) Show() error             { return w.record("show") }
func (w *fakeWindow) Focus() error            { return w.record("focus") }
func (w *fakeWindow) Hide() error             { return w.record("hide") }
func (w *fakeWindow) Navigate(r string) error { return w.record("navigate " + r) }

func (w *fakeWindow) Calls() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

type fakeProbe struct {
	healthy   bool
	status    string
	statusErr error
}

func (p *fakeProbe) CheckHealth(context.Context) (bool, error) { return p.healthy, nil }

func (p *fakeProbe) Status(context.Context) (string, error) {
	if p.statusErr != nil {
		return "", p.statusErr
	}
	return p.status, nil
}

type exitRecorder struct {
	mu     sync.Mutex
	codes  []int
	onExit func()
}

func (e *exitRecorder) Exit(code int) {
	if e.onExit != nil {
		e.onExit()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.codes = append(e.codes, code)
}

func (e *exitRecorder) Codes() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]int(nil), e.codes...)
}

type fixture struct {
	spawner *stubSpawner
	sup     *supervisor.Supervisor
	window  *fakeWindow
	probe   *fakeProbe
	exit    *exitRecorder
	ctrl    *Controller
}

func newFixture(t *testing.T, workDir string) *fixture {
	t.Helper()
	f := &fixture{
		spawner: &stubSpawner{},
		window:  &fakeWindow{},
		probe:   &fakeProbe{},
		exit:    &exitRecorder{},
	}
	f.sup = supervisor.New(f.spawner, supervisor.WithWorkDir(func() (string, error) {
		return workDir, nil
	}))
	f.ctrl = New(f.sup, f.probe, Options{
		Window:        f.window,
		Exit:          f.exit.Exit,
		StartOnLaunch: true,
	})
	return f
}

var shellDir = filepath.FromSlash("/opt/aegis/packages/desktop")

// Package supervisor owns the single companion server process of the desktop
// shell.
//
// A Supervisor holds at most one Handle. Start and Stop are each a single
// critical section, so concurrent callers (startup hook, tray actions, UI
// commands) can never spawn two processes or kill one twice. IsRunning
// reports whether a handle is stored, not whether the OS process is alive: a
// child that crashed stays "running" until Stop is called.
package supervisor

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
)

// ErrPoisoned is returned once a panic has escaped a critical section. The
// stored state can no longer be trusted.
var ErrPoisoned = errors.New("supervisor: state poisoned by an earlier panic")

// Supervisor is the exclusive owner of the companion process handle.
type Supervisor struct {
	mu       sync.Mutex
	handle   Handle
	poisoned bool

	spawner Spawner
	workDir func() (string, error)
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithWorkDir overrides how the working directory is determined.
func WithWorkDir(fn func() (string, error)) Option {
	return func(s *Supervisor) {
		s.workDir = fn
	}
}

// New creates an empty supervisor.
func New(spawner Spawner, opts ...Option) *Supervisor {
	s := &Supervisor{
		spawner: spawner,
		workDir: os.Getwd,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start spawns the companion unless a handle is already stored, in which case
// it reports success without checking the process. Spawn failures are logged
// and reported as false; the error is non-nil only for a poisoned supervisor.
func (s *Supervisor) Start() (started bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned {
		return false, ErrPoisoned
	}
	defer s.recoverPoison(&err)

	if s.handle != nil {
		return true, nil
	}

	h := s.spawnLocked()
	if h == nil {
		return false, nil
	}
	s.handle = h
	return true, nil
}

// Stop empties the slot and kills the stored process, if any. Kill failures
// are ignored.
func (s *Supervisor) Stop() (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned {
		return ErrPoisoned
	}
	defer s.recoverPoison(&err)

	s.killLocked()
	return nil
}

// Shutdown is Stop for paths that cannot report errors (tray quit, exit
// hooks). A poisoned supervisor is skipped.
func (s *Supervisor) Shutdown() {
	if err := s.Stop(); err != nil {
		log.Printf("Warning: skipping companion shutdown: %v", err)
	}
}

// IsRunning reports whether a handle is stored.
func (s *Supervisor) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}

// Pid returns the PID of the stored handle.
func (s *Supervisor) Pid() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle == nil {
		return 0, false
	}
	return s.handle.Pid(), true
}

// Poisoned reports whether a panic has escaped a critical section.
func (s *Supervisor) Poisoned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.poisoned
}

// spawnLocked resolves the application root and spawns the companion.
// Must be called while holding mu.
func (s *Supervisor) spawnLocked() Handle {
	wd, err := s.workDir()
	if err != nil {
		log.Printf("Warning: cannot determine working directory: %v", err)
		return nil
	}

	root, err := AppRoot(wd)
	if err != nil {
		log.Printf("Warning: cannot resolve application root: %v", err)
		return nil
	}

	h, err := s.spawner.Spawn(root)
	if err != nil {
		log.Printf("Warning: failed to spawn companion server: %v", err)
		return nil
	}
	return h
}

// killLocked takes the stored handle and kills it.
// Must be called while holding mu.
func (s *Supervisor) killLocked() {
	h := s.handle
	s.handle = nil
	if h == nil {
		return
	}

	pid := h.Pid()
	if err := h.Kill(); err != nil {
		log.Printf("Companion kill (PID %d) failed, ignoring: %v", pid, err)
		return
	}
	log.Printf("Companion stopped (PID %d)", pid)
}

// recoverPoison must be deferred inside a critical section, after the unlock
// is deferred, so that it runs while mu is still held.
func (s *Supervisor) recoverPoison(err *error) {
	if r := recover(); r != nil {
		s.poisoned = true
		log.Printf("Supervisor poisoned: %v", r)
		*err = fmt.Errorf("%w: %v", ErrPoisoned, r)
	}
}

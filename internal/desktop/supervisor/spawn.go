package supervisor

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/aegis-privacy/aegis-desktop/internal/models"
)

// ErrNoGrandparent is returned when the application root cannot be derived
// from the working directory.
var ErrNoGrandparent = errors.New("working directory has fewer than two ancestors")

// Spawner launches the companion server given the application root.
type Spawner interface {
	Spawn(appRoot string) (Handle, error)
}

// AppRoot returns the grandparent of dir. It fails when the filesystem root is
// reached before two ascents.
func AppRoot(dir string) (string, error) {
	root := filepath.Clean(dir)
	for i := 0; i < 2; i++ {
		parent := filepath.Dir(root)
		if parent == root {
			return "", fmt.Errorf("%s: %w", dir, ErrNoGrandparent)
		}
		root = parent
	}
	return root, nil
}

// LaunchCommand returns the program and arguments used to start the companion
// on goos. Windows goes through `cmd /C` so that npm's .cmd shim resolves.
func LaunchCommand(c models.CompanionConfig, goos string) (string, []string) {
	if goos == "windows" && c.WindowsShell {
		args := append([]string{"/C", c.Command}, c.Args...)
		return "cmd", args
	}
	return c.Command, append([]string(nil), c.Args...)
}

// CommandSpawner spawns the companion as an OS process.
type CommandSpawner struct {
	mu        sync.RWMutex
	companion models.CompanionConfig
	goos      string
}

// NewCommandSpawner creates a spawner for the given launch configuration.
func NewCommandSpawner(c models.CompanionConfig) *CommandSpawner {
	return &CommandSpawner{
		companion: c,
		goos:      runtime.GOOS,
	}
}

// Update replaces the launch configuration. It applies to the next spawn; a
// running companion is left alone.
func (s *CommandSpawner) Update(c models.CompanionConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companion = c
}

// Companion returns the current launch configuration.
func (s *CommandSpawner) Companion() models.CompanionConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.companion
}

// Spawn starts the companion in <appRoot>/<companion dir>.
func (s *CommandSpawner) Spawn(appRoot string) (Handle, error) {
	c := s.Companion()
	dir := filepath.Join(appRoot, filepath.FromSlash(c.Dir))
	if info, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("companion directory: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("companion directory %s is not a directory", dir)
	}

	name, args := LaunchCommand(c, s.goos)
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	out := newLineLogger("[companion] ")
	cmd.Stdout = out
	cmd.Stderr = out

	h, err := StartProcess(cmd)
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	go func() {
		<-h.Done()
		_ = out.Close()
		log.Printf("[companion] exited (pid %d): %v", h.Pid(), h.ExitErr())
	}()

	log.Printf("Spawned companion %s %v in %s (PID %d)", name, args, dir, h.Pid())
	return h, nil
}

//go:build !windows

package supervisor

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/aegis-privacy/aegis-desktop/internal/models"
)

func TestProcessHandleKill(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	h, err := StartProcess(exec.Command("sleep", "30"))
	if err != nil {
		t.Fatalf("StartProcess: %v", err)
	}
	if h.Pid() <= 0 {
		t.Errorf("Pid = %d, want > 0", h.Pid())
	}
	if h.Exited() {
		t.Fatal("Exited = true right after start")
	}

	if err := h.Kill(); err != nil {
		t.Fatalf("Kill: %v", err)
	}

	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit after Kill")
	}
	if !h.Exited() {
		t.Error("Exited = false after Done closed")
	}
	if h.ExitErr() == nil {
		t.Error("ExitErr = nil for a killed process")
	}

	// Killing an exited process is best-effort and must not panic.
	_ = h.Kill()
}

func TestCommandSpawnerRunsInCompanionDir(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	root := t.TempDir()
	dir := filepath.Join(root, "packages", "dashboard")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	sp := NewCommandSpawner(models.CompanionConfig{
		Dir:     "packages/dashboard",
		Command: "sh",
		Args:    []string{"-c", "pwd > cwd.txt"},
	})

	h, err := sp.Spawn(root)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	ph, ok := h.(*ProcessHandle)
	if !ok {
		t.Fatalf("Spawn returned %T, want *ProcessHandle", h)
	}
	select {
	case <-ph.Done():
	case <-time.After(5 * time.Second):
		_ = h.Kill()
		t.Fatal("companion did not exit")
	}

	data, err := os.ReadFile(filepath.Join(dir, "cwd.txt"))
	if err != nil {
		t.Fatalf("companion did not write cwd.txt: %v", err)
	}
	got, _ := filepath.EvalSymlinks(string(data[:len(data)-1]))
	want, _ := filepath.EvalSymlinks(dir)
	if got != want {
		t.Errorf("companion ran in %q, want %q", got, want)
	}
}

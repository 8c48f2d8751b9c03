package main

import (
	"log"
	"os"
	"strings"
	"testing"

	"github.com/aegis-privacy/aegis-desktop/internal/config"
	"github.com/aegis-privacy/aegis-desktop/internal/models"
)

// run defines its flags on the global FlagSet, so it can only be called once
// per test binary.
func TestRunReturnsWhenAlreadyRunning(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	if err := config.SaveDesktopInfo(models.NewDesktopInfo("127.0.0.1", 1, os.Getpid())); err != nil {
		t.Fatalf("SaveDesktopInfo: %v", err)
	}

	oldArgs := os.Args
	os.Args = []string{"aegis-desktop", "--log-file"}
	t.Cleanup(func() {
		os.Args = oldArgs
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
		log.SetFlags(log.LstdFlags)
	})

	if code := run(); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}

	path, err := config.ShellLogFile()
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read shell log: %v", err)
	}
	if !strings.Contains(string(data), "already running") {
		t.Errorf("shell log missing refusal:\n%s", data)
	}
}

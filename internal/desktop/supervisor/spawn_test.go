package supervisor

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aegis-privacy/aegis-desktop/internal/models"
)

func TestAppRoot(t *testing.T) {
	tests := []struct {
		name    string
		dir     string
		want    string
		wantErr bool
	}{
		{name: "deep", dir: "/home/me/aegis/packages/desktop", want: "/home/me/aegis"},
		{name: "exactly two ancestors", dir: "/aegis/desktop", want: "/"},
		{name: "trailing slash", dir: "/opt/aegis/packages/desktop/", want: "/opt/aegis"},
		{name: "one ancestor", dir: "/aegis", wantErr: true},
		{name: "root", dir: "/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AppRoot(filepath.FromSlash(tt.dir))
			if tt.wantErr {
				if !errors.Is(err, ErrNoGrandparent) {
					t.Fatalf("AppRoot(%q) error = %v, want ErrNoGrandparent", tt.dir, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AppRoot(%q): unexpected error: %v", tt.dir, err)
			}
			if want := filepath.FromSlash(tt.want); got != want {
				t.Errorf("AppRoot(%q) = %q, want %q", tt.dir, got, want)
			}
		})
	}
}

func TestLaunchCommand(t *testing.T) {
	def := models.DefaultCompanion()
	direct := def
	direct.WindowsShell = false

	tests := []struct {
		name     string
		cfg      models.CompanionConfig
		goos     string
		wantName string
		wantArgs []string
	}{
		{
			name:     "linux direct",
			cfg:      def,
			goos:     "linux",
			wantName: "npm",
			wantArgs: []string{"run", "dev:server"},
		},
		{
			name:     "darwin direct",
			cfg:      def,
			goos:     "darwin",
			wantName: "npm",
			wantArgs: []string{"run", "dev:server"},
		},
		{
			name:     "windows through cmd",
			cfg:      def,
			goos:     "windows",
			wantName: "cmd",
			wantArgs: []string{"/C", "npm", "run", "dev:server"},
		},
		{
			name:     "windows shell disabled",
			cfg:      direct,
			goos:     "windows",
			wantName: "npm",
			wantArgs: []string{"run", "dev:server"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args := LaunchCommand(tt.cfg, tt.goos)
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestLaunchCommandDoesNotAliasArgs(t *testing.T) {
	cfg := models.DefaultCompanion()
	_, args := LaunchCommand(cfg, "linux")
	args[0] = "mutated"
	if cfg.Args[0] != "run" {
		t.Errorf("LaunchCommand aliased config args: %v", cfg.Args)
	}
}

func TestCommandSpawnerMissingDirectory(t *testing.T) {
	sp := NewCommandSpawner(models.DefaultCompanion())

	h, err := sp.Spawn(t.TempDir())
	if err == nil {
		t.Fatalf("Spawn in missing companion dir returned handle %v", h)
	}
}

func TestCommandSpawnerUpdate(t *testing.T) {
	sp := NewCommandSpawner(models.DefaultCompanion())

	next := models.CompanionConfig{Dir: "apps/api", Command: "node", Args: []string{"server.js"}}
	sp.Update(next)

	if got := sp.Companion(); !reflect.DeepEqual(got, next) {
		t.Errorf("Companion() = %+v, want %+v", got, next)
	}
}

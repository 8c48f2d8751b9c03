package models

// CompanionConfig describes how the companion server is launched.
type CompanionConfig struct {
	Dir          string   `yaml:"dir"` // relative to the application root
	Command      string   `yaml:"command"`
	Args         []string `yaml:"args"`
	WindowsShell bool     `yaml:"windows_shell"` // wrap in `cmd /C` on Windows
}

// Settings represents global shell settings.
// This corresponds to ~/.aegis/settings.yaml.
type Settings struct {
	Version       int             `yaml:"version"`
	Companion     CompanionConfig `yaml:"companion"`
	DashboardURL  string          `yaml:"dashboard_url"`
	StartOnLaunch bool            `yaml:"start_on_launch"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:       1,
		Companion:     DefaultCompanion(),
		DashboardURL:  ServerURL() + "/",
		StartOnLaunch: true,
	}
}

// DefaultCompanion returns the development-mode launch of the dashboard
// package: `npm run dev:server` in packages/dashboard.
func DefaultCompanion() CompanionConfig {
	return CompanionConfig{
		Dir:          "packages/dashboard",
		Command:      "npm",
		Args:         []string{"run", "dev:server"},
		WindowsShell: true,
	}
}

// Normalize fills zero-valued fields with defaults. Files written by older
// versions, or edited by hand, may omit sections.
func (s *Settings) Normalize() {
	def := NewSettings()
	if s.Version == 0 {
		s.Version = def.Version
	}
	if s.Companion.Dir == "" {
		s.Companion.Dir = def.Companion.Dir
	}
	if s.Companion.Command == "" {
		s.Companion.Command = def.Companion.Command
		s.Companion.Args = def.Companion.Args
		s.Companion.WindowsShell = def.Companion.WindowsShell
	}
	if s.DashboardURL == "" {
		s.DashboardURL = def.DashboardURL
	}
}

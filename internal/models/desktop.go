package models

import "time"

// DesktopInfo describes a running desktop shell and its control endpoint.
// This corresponds to ~/.aegis/desktop.yaml. It records the shell itself, not
// the companion server.
type DesktopInfo struct {
	Version   int       `yaml:"version"`
	Host      string    `yaml:"host"`
	Port      int       `yaml:"port"`
	PID       int       `yaml:"pid"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewDesktopInfo creates a new desktop info with current values.
func NewDesktopInfo(host string, port, pid int) *DesktopInfo {
	return &DesktopInfo{
		Version:   1,
		Host:      host,
		Port:      port,
		PID:       pid,
		StartedAt: time.Now().UTC(),
	}
}

package models

import "fmt"

// The companion server binds a fixed address. It is not negotiated with the
// spawned process, so a second instance or a foreign listener on the same port
// is indistinguishable from our own server.
const (
	ServerHost = "localhost"
	ServerPort = 4243
)

// Companion server endpoints.
const (
	HealthPath = "/api/health"
	StatusPath = "/api/status"
)

// ServerAddress returns host:port of the companion server.
func ServerAddress() string {
	return fmt.Sprintf("%s:%d", ServerHost, ServerPort)
}

// ServerURL returns the base URL of the companion server.
func ServerURL() string {
	return "http://" + ServerAddress()
}

package tui

import "time"

// healthMsg carries the result of a health check.
type healthMsg struct {
	Healthy bool
	At      time.Time
}

// statusMsg carries the status payload, or the error that replaced it.
type statusMsg struct {
	Body   string
	Err    error
	Manual bool
}

// tickMsg triggers the next poll.
type tickMsg time.Time

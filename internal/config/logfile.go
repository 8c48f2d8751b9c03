package config

import (
	"fmt"
	"os"
)

// OpenShellLog opens the desktop shell log file for appending, creating the
// logs directory if needed. The caller owns the returned file.
func OpenShellLog() (*os.File, error) {
	if err := EnsureGlobalLogsDir(); err != nil {
		return nil, fmt.Errorf("failed to ensure logs dir: %w", err)
	}

	path, err := ShellLogFile()
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

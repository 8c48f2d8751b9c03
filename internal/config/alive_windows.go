//go:build windows

package config

import "os"

// processAlive reports whether pid can be opened. FindProcess on Windows
// opens a handle and fails for processes that no longer exist.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = process.Release()
	return true
}

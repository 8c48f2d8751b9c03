package config

import (
	"os"
	"path/filepath"

	"github.com/aegis-privacy/aegis-desktop/internal/models"
)

// DesktopFileName is the name of the running-shell info file.
const DesktopFileName = "desktop.yaml"

// GlobalDesktopFile returns the path to the desktop.yaml file.
func GlobalDesktopFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DesktopFileName), nil
}

// LoadDesktopInfo loads the shell connection info from ~/.aegis/desktop.yaml.
// Returns nil if the file doesn't exist.
func LoadDesktopInfo() (*models.DesktopInfo, error) {
	path, err := GlobalDesktopFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.DesktopInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveDesktopInfo saves the shell connection info to ~/.aegis/desktop.yaml.
func SaveDesktopInfo(info *models.DesktopInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}

	path, err := GlobalDesktopFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveDesktopInfo removes the desktop.yaml file.
func RemoveDesktopInfo() error {
	path, err := GlobalDesktopFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsDesktopRunning checks whether the shell recorded in desktop.yaml is still
// alive. A stale file is removed.
func IsDesktopRunning() (bool, *models.DesktopInfo, error) {
	info, err := LoadDesktopInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	if !processAlive(info.PID) {
		_ = RemoveDesktopInfo()
		return false, info, nil
	}
	return true, info, nil
}

package main

import (
	"os"
	"path/filepath"
)

// xdgConfigHome returns the XDG config home or a default fallback.
func xdgConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// xdgDataHome returns the XDG data home or a default fallback.
func xdgDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

func defaultConfigPath() string {
	return filepath.Join(xdgConfigHome(), "charchain", "config.json")
}

func defaultDBPath() string {
	return filepath.Join(xdgDataHome(), "charchain", "runs.db")
}

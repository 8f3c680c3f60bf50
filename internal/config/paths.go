// Package config loads fileripper settings from a YAML file and the environment.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "fileripper"

// Paths holds the directories fileripper reads from.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/fileripper)
	ConfigDir string

	// StateDir holds the default log file (~/.local/state/fileripper)
	StateDir string
}

// DefaultPaths returns the XDG base directories for fileripper.
// On Windows, it uses %APPDATA% and %LOCALAPPDATA% instead.
func DefaultPaths() *Paths {
	return defaultPaths(runtime.GOOS, os.Getenv, homeDir())
}

func defaultPaths(goos string, getenv func(string) string, home string) *Paths {
	if goos == "windows" {
		appData := getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}
		return &Paths{
			ConfigDir: filepath.Join(appData, appName),
			StateDir:  filepath.Join(localAppData, appName),
		}
	}

	configHome := getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	stateHome := getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}
	return &Paths{
		ConfigDir: filepath.Join(configHome, appName),
		StateDir:  filepath.Join(stateHome, appName),
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// LogFile returns the suggested log file location for the interactive mode.
func (p *Paths) LogFile() string {
	return filepath.Join(p.StateDir, "fileripper.log")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return os.Getenv("USERPROFILE")
		}
		return os.Getenv("HOME")
	}
	return home
}

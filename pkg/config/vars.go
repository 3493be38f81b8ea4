package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "bosdb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/bosdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for the catalog database file.
// Returns ~/.local/share/bosdb by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/bosdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/bosdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DatabaseFilePath returns the default SQLite file of the catalog.
// Returns ~/.local/share/bosdb/bosdb.sqlite by default.
func DatabaseFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), AppName+".sqlite")
}

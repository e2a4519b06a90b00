package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default tasks data directory name (relative to home).
	DefaultDataDir = ".tasks"
	// DBFile is the local task list database filename.
	DBFile = "tasks.db"
	// ConfigFile is the optional client configuration filename.
	ConfigFile = "config.yaml"
	// DefaultListenAddr is the address of the local fake endpoint.
	DefaultListenAddr = "127.0.0.1:8090"
)

// DBPath returns the path of the local task list database.
func DBPath(homeDir string) string {
	return filepath.Join(homeDir, DefaultDataDir, DBFile)
}

// ConfigPath returns the path of the client configuration file.
func ConfigPath(homeDir string) string {
	return filepath.Join(homeDir, DefaultDataDir, ConfigFile)
}

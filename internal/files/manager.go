package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPermissions = 0o755

	configFileName = "config.yml"
	dbFileName     = "jam.db"
	sqliteFileName = "jam.sqlite"
	logFileName    = "jam.log"
)

// Manager centralizes where jam keeps its files on disk.
type Manager struct {
	basePath  string
	configDir string
}

// NewManager constructs a Manager rooted at the provided directory. If basePath
// is empty, data and config locations come from ResolveBasePath and
// ResolveConfigDir. An explicit basePath holds the config file too.
func NewManager(basePath string) (*Manager, error) {
	configDir := basePath
	var err error
	if basePath == "" {
		if basePath, err = ResolveBasePath(); err != nil {
			return nil, err
		}
		if configDir, err = ResolveConfigDir(); err != nil {
			return nil, err
		}
	}

	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}
	absConfig, err := filepath.Abs(configDir)
	if err != nil {
		return nil, err
	}

	return &Manager{basePath: abs, configDir: absConfig}, nil
}

// BasePath returns the root directory holding the database and logs.
func (m *Manager) BasePath() string {
	return m.basePath
}

// ConfigPath is the YAML config file. It may not exist yet.
func (m *Manager) ConfigPath() string {
	return filepath.Join(m.configDir, configFileName)
}

// DBPath is the default database file for the given store driver.
func (m *Manager) DBPath(driver string) string {
	if driver == "sqlite" {
		return filepath.Join(m.basePath, sqliteFileName)
	}
	return filepath.Join(m.basePath, dbFileName)
}

// LogPath is the rotating log file.
func (m *Manager) LogPath() string {
	return filepath.Join(m.basePath, "log", logFileName)
}

// EnsureDirs creates the data, log and config directories.
func (m *Manager) EnsureDirs() error {
	if m == nil {
		return errors.New("files.Manager is nil")
	}
	for _, dir := range []string{m.basePath, filepath.Dir(m.LogPath()), m.configDir} {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("create directories: %w", err)
		}
	}
	return nil
}

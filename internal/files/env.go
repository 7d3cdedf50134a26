package files

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	// AppDirName is the folder jam uses under the XDG data and config roots.
	AppDirName = "jam"

	// HomeEnv overrides every jam path when set.
	HomeEnv = "JAM_HOME"
)

// ResolveBasePath determines where jam keeps its database and logs, defaulting
// to $XDG_DATA_HOME/jam. The location can be overridden by exporting JAM_HOME.
func ResolveBasePath() (string, error) {
	if path, ok, err := homeOverride(); ok || err != nil {
		return path, err
	}
	return filepath.Join(xdg.DataHome, AppDirName), nil
}

// ResolveConfigDir returns the directory holding config.yml: JAM_HOME when
// set, otherwise $XDG_CONFIG_HOME/jam.
func ResolveConfigDir() (string, error) {
	if path, ok, err := homeOverride(); ok || err != nil {
		return path, err
	}
	return filepath.Join(xdg.ConfigHome, AppDirName), nil
}

func homeOverride() (string, bool, error) {
	override, ok := os.LookupEnv(HomeEnv)
	if !ok {
		return "", false, nil
	}
	override = strings.TrimSpace(override)
	if override == "" {
		return "", false, nil
	}
	path, err := normalizePath(override)
	if err != nil {
		return "", true, err
	}
	return path, true, nil
}

func normalizePath(input string) (string, error) {
	if strings.HasPrefix(input, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		input = filepath.Join(home, strings.TrimPrefix(input, "~"))
	}
	return input, nil
}

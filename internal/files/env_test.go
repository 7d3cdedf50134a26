package files

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func TestResolveBasePathHonorsJamHome(t *testing.T) {
	tmp := t.TempDir()
	custom := filepath.Join(tmp, "custom-root")

	t.Setenv(HomeEnv, custom)

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}
	if got != custom {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, custom)
	}

	configDir, err := ResolveConfigDir()
	if err != nil {
		t.Fatalf("ResolveConfigDir() error = %v", err)
	}
	if configDir != custom {
		t.Fatalf("ResolveConfigDir() = %q, want %q", configDir, custom)
	}
}

func TestResolveBasePathExpandsTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(HomeEnv, "~/jam-data")

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}

	want := filepath.Join(home, "jam-data")
	if got != want {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, want)
	}
}

func TestResolveBasePathDefaultsToXDG(t *testing.T) {
	data := t.TempDir()
	config := t.TempDir()
	t.Setenv(HomeEnv, "")
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv("XDG_CONFIG_HOME", config)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}
	if want := filepath.Join(data, AppDirName); got != want {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, want)
	}

	configDir, err := ResolveConfigDir()
	if err != nil {
		t.Fatalf("ResolveConfigDir() error = %v", err)
	}
	if want := filepath.Join(config, AppDirName); configDir != want {
		t.Fatalf("ResolveConfigDir() = %q, want %q", configDir, want)
	}
}

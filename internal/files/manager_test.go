package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestManagerPaths(t *testing.T) {
	tmp := t.TempDir()

	mgr, err := NewManager(tmp)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	tests := map[string]struct {
		got, want string
	}{
		"config": {mgr.ConfigPath(), filepath.Join(tmp, "config.yml")},
		"bolt":   {mgr.DBPath("bolt"), filepath.Join(tmp, "jam.db")},
		"sqlite": {mgr.DBPath("sqlite"), filepath.Join(tmp, "jam.sqlite")},
		"log":    {mgr.LogPath(), filepath.Join(tmp, "log", "jam.log")},
	}
	for name, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s path = %q, want %q", name, tt.got, tt.want)
		}
	}
}

func TestEnsureDirsCreatesTree(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "nested", "root")

	mgr, err := NewManager(tmp)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := mgr.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}

	for _, dir := range []string{tmp, filepath.Join(tmp, "log")} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("%q is not a directory", dir)
		}
	}

	// Second call is harmless.
	if err := mgr.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs second call: %v", err)
	}
}

func TestNilManager(t *testing.T) {
	var mgr *Manager
	if err := mgr.EnsureDirs(); err == nil {
		t.Fatal("EnsureDirs on nil manager should fail")
	}
}

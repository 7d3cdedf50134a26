// Package version exposes build metadata stamped in at link time.
package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are populated at build time via -ldflags, e.g.
// -X github.com/faizmokh/jam/internal/version.Version=v0.1.0.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns a human-friendly version string that surfaces build metadata.
func Info() string {
	version, commit := Version, Commit
	if version == "dev" {
		// go install stamps the module version and VCS revision.
		if info, ok := debug.ReadBuildInfo(); ok {
			if v := info.Main.Version; v != "" && v != "(devel)" {
				version = v
			}
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && commit == "none" && len(s.Value) >= 7 {
					commit = s.Value[:7]
				}
			}
		}
	}
	return fmt.Sprintf("%s (commit %s, built %s)", version, commit, Date)
}

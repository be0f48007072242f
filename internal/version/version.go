// Package version holds the build-time version variables for the plr binary.
// The zero values ("none", "unknown") are used for local builds; Version
// defaults to the report schema version. GoReleaser injects the real values
// via -ldflags at release time.
package version

import "fmt"

// These variables are overridden by GoReleaser ldflags at release time.
var (
	Version = "1.0.0"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the formatted version string printed by plr version.
func Info() string {
	return fmt.Sprintf(
		"plr version %s\ncommit: %s\nbuilt: %s\n",
		Version,
		Commit,
		Date,
	)
}

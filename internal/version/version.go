// Package version holds build metadata injected with -ldflags.
package version

import (
	"runtime"
	"strings"
	"time"
)

var (
	AppName        = "Grace"
	AppDescription = "The official Code Society Discord bot"
	// BuildDate is RFC3339, set with -ldflags "-X .../version.BuildDate=..."
	BuildDate = ""
	Commit    = ""
	GoVersion = runtime.Version()
)

// Release formats the build date and Go version for display.
func Release() string {
	date := "unknown"
	if BuildDate != "" {
		if t, err := time.Parse(time.RFC3339, BuildDate); err == nil {
			date = t.Format("2006-01-02")
		} else {
			date = "invalid date"
		}
	}

	goVer := strings.TrimPrefix(GoVersion, "go")
	if goVer == "" {
		goVer = "unknown"
	}

	return date + " (Go " + goVer + ")"
}

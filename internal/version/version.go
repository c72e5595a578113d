// In file: internal/version/version.go

// Package version holds the build metadata stamped in at link time, e.g.
//
//	go build -ldflags "-X github.com/dileep-u-k/weather-alerts/internal/version.version=v1.2.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

// ServerName is the name announced to hosts during the protocol handshake.
const ServerName = "weather"

type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

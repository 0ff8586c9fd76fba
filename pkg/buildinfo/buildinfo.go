// Package buildinfo holds version information stamped at build time:
//
//	go build -ldflags "-X github.com/matzehuels/noticer/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/noticer/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/noticer/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the multi-line version report of `noticer version`.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s (%s)\n", Version, Commit)
}

// UserAgent identifies noticer in outgoing HTTP requests.
func UserAgent() string {
	return "noticer/" + Version + " (+https://github.com/matzehuels/noticer)"
}

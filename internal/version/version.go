// Package version provides build information for facetq.
package version

import "runtime"

// Set at build time with -ldflags "-X github.com/storefront-kit/facetq/internal/version.Version=...".
var (
	Version = "development"
	Commit  = "unknown"
	Date    = ""
)

// String returns the version including the commit hash if available.
func String() string {
	if Commit != "unknown" && Commit != "" {
		return Version + "+" + Commit
	}
	return Version
}

// Info is the structured form printed by `facetq version --json`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

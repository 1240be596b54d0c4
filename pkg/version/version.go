// Package version reports build information for the chimera binary
package version

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

// Set at build time with -ldflags "-X github.com/jingkaihe/chimera/pkg/version.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// HubFormat is the revision of the chimera hub frontmatter layout written by
// this build. It changes only when hub documents stop being readable by
// older builds.
const HubFormat = 1

// Info describes the running build
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	HubFormat int    `json:"hubFormat"`
}

// Get returns the build information of the running binary
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		HubFormat: HubFormat,
	}
}

// String renders the info on one line, as printed by chimera --version
func (i Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s, hub format %d)",
		i.Version, i.GitCommit, i.BuildTime, i.GoVersion, i.HubFormat)
}

// JSON renders the info as indented JSON
func (i Info) JSON() (string, error) {
	b, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal version info")
	}
	return string(b), nil
}

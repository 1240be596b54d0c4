package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuild(t *testing.T, version, commit, built string) {
	t.Helper()
	oldVersion, oldCommit, oldBuilt := Version, GitCommit, BuildTime
	Version, GitCommit, BuildTime = version, commit, built
	t.Cleanup(func() {
		Version, GitCommit, BuildTime = oldVersion, oldCommit, oldBuilt
	})
}

func TestGet(t *testing.T) {
	withBuild(t, "0.3.0", "4f2c9e1", "2026-10-18T09:34:29Z")

	info := Get()
	assert.Equal(t, "0.3.0", info.Version)
	assert.Equal(t, "4f2c9e1", info.GitCommit)
	assert.Equal(t, "2026-10-18T09:34:29Z", info.BuildTime)
	assert.Equal(t, HubFormat, info.HubFormat)
	assert.True(t, strings.HasPrefix(info.GoVersion, "go"))
}

func TestGet_Defaults(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GitCommit)
}

func TestInfo_String(t *testing.T) {
	info := Info{Version: "0.3.0", GitCommit: "4f2c9e1", BuildTime: "2026-10-18T09:34:29Z", GoVersion: "go1.25.1", HubFormat: 1}
	assert.Equal(t, "0.3.0 (commit 4f2c9e1, built 2026-10-18T09:34:29Z, go1.25.1, hub format 1)", info.String())
}

func TestInfo_JSON(t *testing.T) {
	info := Info{Version: "0.3.0", GitCommit: "4f2c9e1", BuildTime: "2026-10-18T09:34:29Z", GoVersion: "go1.25.1", HubFormat: 1}

	out, err := info.JSON()
	require.NoError(t, err)
	assert.Equal(t, `{
  "version": "0.3.0",
  "gitCommit": "4f2c9e1",
  "buildTime": "2026-10-18T09:34:29Z",
  "goVersion": "go1.25.1",
  "hubFormat": 1
}`, out)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PROCUREFLOW_SERVER_PORT", "9090")
	t.Setenv("PROCUREFLOW_CANVASS_RETAIN_REVISIONS", "0")
	t.Setenv("PROCUREFLOW_DATABASE_DRIVER", "postgres")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0, cfg.Canvass.RetainRevisions)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "procureflow", cfg.Storage.Bucket)
	assert.Equal(t, int64(20<<20), cfg.Canvass.MaxFileSize())
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvOverridesMode(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("release")
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.False(t, cfg.Server.IsDebug())
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/revstore/pkg/revision"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "revstore.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[repository]
ambiguity = "branch"

[storage]
backend = "badger"
path = "/var/lib/revstore"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ".git", cfg.Repository.Dir, "unset keys keep their default")
	assert.Equal(t, BackendBadger, cfg.Storage.Backend)
	assert.Equal(t, "/var/lib/revstore", cfg.Storage.Path)

	p, err := cfg.Precedence()
	require.NoError(t, err)
	assert.Equal(t, revision.PreferBranch, p)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "level", content: "[log]\nlevel = \"loud\"\n", want: "log.level"},
		{name: "ambiguity", content: "[repository]\nambiguity = \"newest\"\n", want: "repository.ambiguity"},
		{name: "dir", content: "[repository]\ndir = \"a/b\"\n", want: "repository.dir"},
		{name: "backend", content: "[storage]\nbackend = \"s3\"\n", want: "storage.backend"},
		{name: "badger path", content: "[storage]\nbackend = \"badger\"\n", want: "storage.path"},
		{name: "unknown key", content: "[storage]\ncompression = true\n", want: "storage.compression"},
		{name: "syntax", content: "[log\n", want: "read config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "")
	assert.Equal(t, DefaultPath, Path(""))

	t.Setenv(EnvPath, "/etc/revstore.toml")
	assert.Equal(t, "/etc/revstore.toml", Path(""))
	assert.Equal(t, "custom.toml", Path("custom.toml"))
}

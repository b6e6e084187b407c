package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdqerrors "github.com/mdquery/mdq/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mdq.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
source-glob = "/home/notes/**/*.md"
index-path = "/var/lib/mdq/index.bleve"
checksum-path = "/var/lib/mdq/sums.yaml"
limit = 50
log-level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/home/notes/**/*.md", cfg.SourceGlob)
	assert.Equal(t, "/var/lib/mdq/index.bleve", cfg.IndexPath)
	assert.Equal(t, "/var/lib/mdq/sums.yaml", cfg.ChecksumPath)
	assert.Equal(t, 50, cfg.Limit)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `source-glob = "/notes/*.md"`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/notes/*.md", cfg.SourceGlob)
	assert.Equal(t, 100, cfg.Limit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Contains(t, cfg.IndexPath, "index.bleve")
	assert.Contains(t, cfg.ChecksumPath, "checksums.yaml")
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Equal(t, mdqerrors.ErrCodeConfigNotFound, mdqerrors.GetCode(err))
	assert.True(t, mdqerrors.IsFatal(err))
}

func TestLoadMalformedTOMLFails(t *testing.T) {
	path := writeConfig(t, `source-glob = [broken`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, mdqerrors.ErrCodeConfigInvalid, mdqerrors.GetCode(err))
}

func TestLoadExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path := writeConfig(t, `source-glob = "~/notes/*.md"`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes", "*.md"), cfg.SourceGlob)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, mdqerrors.ErrCodeConfigInvalid, mdqerrors.GetCode(err))

	cfg.SourceGlob = "/notes/*.md"
	require.NoError(t, cfg.Validate())

	cfg.Limit = 0
	require.Error(t, cfg.Validate())
}

func TestDefaultPath(t *testing.T) {
	assert.Contains(t, DefaultPath(), filepath.Join(".config", "mdq", "mdq.toml"))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[libraries.tv]
roots = ["/tv", "/tv2"]
folder_naming = "{title}"
file_naming = "{title} S{season:02}E{episode:02}.{ext}"

[libraries.movies]
roots = ["/movies"]

[matching]
tv_threshold = 0.75

[tmdb]
api_key = "abc123"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"/tv", "/tv2"}, cfg.Libraries.TV.Roots)
	assert.Equal(t, "{title}", cfg.Libraries.TV.FolderNaming)
	assert.Equal(t, "{title} S{season:02}E{episode:02}.{ext}", cfg.Libraries.TV.FileNaming)
	assert.Equal(t, []string{"/movies"}, cfg.Libraries.Movies.Roots)
	assert.Equal(t, 0.75, cfg.Matching.TVThreshold)
	assert.Equal(t, "abc123", cfg.TMDB.APIKey)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "./data/shelfarr.db", cfg.Database.Path)
	assert.Equal(t, DefaultTVThreshold, cfg.Matching.TVThreshold)
	assert.Equal(t, DefaultMovieThreshold, cfg.Matching.MovieThreshold)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("SHELFARR_TMDB_KEY", "secret")

	cfg, err := Load(writeConfig(t, `
[tmdb]
api_key = "${SHELFARR_TMDB_KEY}"
`))
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.TMDB.APIKey)
}

func TestLoad_EnvSubstitutionMissingVarLeftAlone(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[tmdb]
api_key = "${SHELFARR_DOES_NOT_EXIST}"
`))
	require.NoError(t, err)
	assert.Equal(t, "${SHELFARR_DOES_NOT_EXIST}", cfg.TMDB.APIKey)
}

func TestValidateRoots(t *testing.T) {
	cfg := &Config{
		Libraries: LibrariesConfig{
			TV:     LibraryConfig{Roots: []string{"/tv"}},
			Movies: LibraryConfig{Roots: []string{"/movies"}},
		},
	}

	assert.NoError(t, cfg.ValidateRoots("tv", []string{"/tv"}))
	assert.Error(t, cfg.ValidateRoots("tv", []string{"/other"}))
	assert.Error(t, cfg.ValidateRoots("tv", nil))
	assert.NoError(t, cfg.ValidateRoots("movie", []string{"/movies"}))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gator/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), fileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRead(t *testing.T) {
	t.Setenv("GATOR_DB_URL", "")
	path := writeFile(t, `
db_url = "postgres://localhost:5432/gator?sslmode=disable"
current_user_name = "lane"
`)

	cfg, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost:5432/gator?sslmode=disable", cfg.DBURL)
	assert.Equal(t, path, cfg.Path())

	name, err := cfg.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, "lane", name)
}

func TestReadWithoutCurrentUser(t *testing.T) {
	t.Setenv("GATOR_DB_URL", "")
	path := writeFile(t, `db_url = "postgres://localhost/gator"`)

	cfg, err := Read(path)
	require.NoError(t, err)

	name, err := cfg.CurrentUser()
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestReadErrors(t *testing.T) {
	t.Setenv("GATOR_DB_URL", "")

	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") },
		},
		{
			name: "not toml",
			path: func(t *testing.T) string { return writeFile(t, `db_url = `) },
		},
		{
			name: "missing db_url",
			path: func(t *testing.T) string { return writeFile(t, `current_user_name = "lane"`) },
		},
		{
			name: "empty db_url",
			path: func(t *testing.T) string { return writeFile(t, `db_url = ""`) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(tt.path(t))
			assert.ErrorIs(t, err, domain.ErrConfig)
		})
	}
}

func TestReadDBURLFromEnv(t *testing.T) {
	t.Setenv("GATOR_DB_URL", "postgres://env/gator")
	path := writeFile(t, `current_user_name = "lane"`)

	cfg, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/gator", cfg.DBURL)
}

func TestSetCurrentUserPreservesDBURL(t *testing.T) {
	t.Setenv("GATOR_DB_URL", "")
	path := writeFile(t, `db_url = "postgres://localhost/gator"`)

	cfg, err := Read(path)
	require.NoError(t, err)
	require.NoError(t, cfg.SetCurrentUser("kim"))

	name, err := cfg.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, "kim", name)

	reread, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/gator", reread.DBURL)
	assert.Equal(t, "kim", reread.CurrentUserName)
}

func TestSetCurrentUserDoesNotPersistEnvOverride(t *testing.T) {
	path := writeFile(t, `db_url = "postgres://file/gator"`)
	t.Setenv("GATOR_DB_URL", "postgres://env/gator")

	cfg, err := Read(path)
	require.NoError(t, err)
	require.NoError(t, cfg.SetCurrentUser("lane"))

	t.Setenv("GATOR_DB_URL", "")
	reread, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://file/gator", reread.DBURL)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("GATOR_CONFIG", "/tmp/custom.toml")
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.toml", path)

	t.Setenv("GATOR_CONFIG", "")
	t.Setenv("HOME", "/home/lane")
	path, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/lane", fileName), path)
}

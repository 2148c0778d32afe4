package environment

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvironmentDefaults(t *testing.T) {
	t.Setenv("DATA_DIR", "/data/nde")

	fs := afero.NewMemMapFs()
	env, err := NewEnvironment(fs)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", env.ServerHost)
	assert.Equal(t, "5000", env.ServerPort)
	assert.Equal(t, filepath.Join("/data/nde", "uploads"), env.UploadDir)
	assert.Equal(t, filepath.Join("/data/nde", "nde_assistant.db"), env.DatabasePath)
	assert.Equal(t, 50, env.MaxUploadMB)
	assert.Equal(t, 50, env.ExtractMinChars)
	assert.True(t, env.StrictImageValidation)
	assert.Equal(t, 24, env.RetentionHours)

	for _, dir := range []string{env.DataDir, env.UploadDir} {
		exists, err := afero.DirExists(fs, dir)
		require.NoError(t, err)
		assert.True(t, exists, dir)
	}
}

func TestNewEnvironmentOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/data/nde")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("EXTRACT_MIN_CHARS", "10")
	t.Setenv("STRICT_IMAGE_VALIDATION", "false")

	env, err := NewEnvironment(afero.NewMemMapFs())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", env.ListenAddr())
	assert.Equal(t, int64(2<<20), env.MaxUploadBytes())
	assert.Equal(t, 10, env.ExtractMinChars)
	assert.False(t, env.StrictImageValidation)
}

package filecheck

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashFileKnownDigest(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "hello.txt", []byte("hello world"))

	hash, err := HashFile(fs, "hello.txt")
	require.NoError(t, err)
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", hash)
}

func TestHashFileLargerThanChunk(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := []byte(strings.Repeat("a", hashChunkSize*3+17))
	writeFile(t, fs, "big.bin", data)

	hash, err := HashFile(fs, "big.bin")
	require.NoError(t, err)
	assert.Len(t, hash, 64)

	// Deterministic across calls.
	again, err := HashFile(fs, "big.bin")
	require.NoError(t, err)
	assert.Equal(t, hash, again)
}

func TestHashFileMissing(t *testing.T) {
	_, err := HashFile(afero.NewMemMapFs(), "absent.bin")
	assert.Error(t, err)
}

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, "nested/a.yaml", "name: a\n")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name: a\n", string(data))
}

func TestWriteFiles(t *testing.T) {
	dir := WriteFiles(t, map[string]string{"a.yaml": "a", "sub/b.yml": "b"})

	data, err := os.ReadFile(filepath.Join(dir, "sub", "b.yml"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
}

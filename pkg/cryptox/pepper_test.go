package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrGeneratePepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := loadOrGeneratePepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	second, err := loadOrGeneratePepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadOrGeneratePepper_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	_, err := loadOrGeneratePepper(path)
	require.Error(t, err)
}

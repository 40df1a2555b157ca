package file

import (
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
)

func TestEnvFile_MergePreservesUnmanagedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environment")
	require.NoError(t, godotenv.Write(map[string]string{
		"PATH":   "/usr/local/bin:/usr/bin",
		"EDITOR": "nano",
	}, path))

	res, err := NewEnvFile("environment", map[string]interface{}{
		"file": path,
		"vars": map[string]interface{}{
			"EDITOR":   "nvim",
			"LC_CTYPE": "de_DE.UTF-8",
		},
	}, nil)
	require.NoError(t, err)
	require.NoError(t, res.Validate())

	ctx := testContext(t)
	result, err := res.Apply(ctx)
	require.NoError(t, err)
	require.True(t, result.Changed)

	got, err := godotenv.Read(path)
	require.NoError(t, err)
	require.Equal(t, "nvim", got["EDITOR"])
	require.Equal(t, "de_DE.UTF-8", got["LC_CTYPE"])
	require.Equal(t, "/usr/local/bin:/usr/bin", got["PATH"], "unmanaged key preserved")
}

func TestEnvFile_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environment")

	res, _ := NewEnvFile("environment", map[string]interface{}{
		"file": path,
		"vars": map[string]interface{}{"EDITOR": "nvim"},
	}, nil)

	ctx := testContext(t)

	result, err := res.Apply(ctx)
	require.NoError(t, err)
	require.True(t, result.Changed, "first apply creates the file")

	result, err = res.Apply(ctx)
	require.NoError(t, err)
	require.False(t, result.Changed, "second apply is satisfied")
}

func TestEnvFile_ValidateRejectsEmpty(t *testing.T) {
	res, _ := NewEnvFile("environment", map[string]interface{}{
		"file": "/etc/environment",
	}, nil)
	require.Error(t, res.Validate())
}

package journald

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"github.com/mintup/mintup/internal/core"
)

func testContext() *core.SystemContext {
	return core.NewSystemContext(false, core.NewMockRunner(), core.NewDefaultLogger(os.Stderr, core.LevelError))
}

func seedConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journald.conf")
	seed := `[Journal]
#Storage=auto
#SystemMaxUse=
#SyncIntervalSec=5m
`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))
	return path
}

func TestProperty_SetUncommentsDefault(t *testing.T) {
	path := seedConfig(t)

	res, err := NewProperty("Storage", map[string]interface{}{
		"file": path, "value": "persistent",
	}, nil)
	require.NoError(t, err)
	require.NoError(t, res.Validate())

	result, err := res.Apply(testContext())
	require.NoError(t, err)
	require.True(t, result.Changed)

	cfg, err := ini.Load(path)
	require.NoError(t, err)
	require.Equal(t, "persistent", cfg.Section("Journal").Key("Storage").String())
}

func TestProperty_BackupCreatedOnce(t *testing.T) {
	path := seedConfig(t)
	ctx := testContext()

	res, _ := NewProperty("SystemMaxUse", map[string]interface{}{
		"file": path, "value": "100M",
	}, nil)
	_, err := res.Apply(ctx)
	require.NoError(t, err)

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	require.Contains(t, string(backup), "#Storage=auto", "backup holds original content")

	// Second property must not overwrite the backup.
	res2, _ := NewProperty("SystemMaxFileSize", map[string]interface{}{
		"file": path, "value": "50M",
	}, nil)
	_, err = res2.Apply(ctx)
	require.NoError(t, err)

	backupAgain, _ := os.ReadFile(path + ".bak")
	require.Equal(t, string(backup), string(backupAgain))
}

func TestProperty_Idempotent(t *testing.T) {
	path := seedConfig(t)
	ctx := testContext()

	res, _ := NewProperty("SyncIntervalSec", map[string]interface{}{
		"file": path, "value": "5m",
	}, nil)

	result, err := res.Apply(ctx)
	require.NoError(t, err)
	require.True(t, result.Changed, "commented default is not a set value")

	result, err = res.Apply(ctx)
	require.NoError(t, err)
	require.False(t, result.Changed)
}

func TestProperty_ValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"persistent", true},
		{"100M", true},
		{"5m", true},
		{"yes", true},
		{"rm -rf /", false},
		{"100MB", false},
		{"", false},
	}

	for _, tt := range tests {
		res, _ := NewProperty("Storage", map[string]interface{}{"value": tt.value}, nil)
		err := res.Validate()
		if tt.ok {
			require.NoError(t, err, "value %q should validate", tt.value)
		} else {
			require.Error(t, err, "value %q should be rejected", tt.value)
		}
	}
}

package core

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func templateContext() *SystemContext {
	ctx := NewSystemContext(true, NewMockRunner(), NewDefaultLogger(os.Stderr, LevelError))
	ctx.Distro = "linuxmint"
	ctx.HomeDir = "/home/worker"
	ctx.Vars = map[string]string{"locale": "de_DE.UTF-8"}
	return ctx
}

func TestExecuteTemplate(t *testing.T) {
	ctx := templateContext()

	out, err := ExecuteTemplate(`{{ .HomeDir }}/.config`, ctx)
	require.NoError(t, err)
	require.Equal(t, "/home/worker/.config", out)

	out, err = ExecuteTemplate(`{{ .Vars.locale | default "C.UTF-8" }}`, ctx)
	require.NoError(t, err)
	require.Equal(t, "de_DE.UTF-8", out)

	out, err = ExecuteTemplate(`{{ .Distro | upper }}`, ctx)
	require.NoError(t, err)
	require.Equal(t, "LINUXMINT", out)
}

func TestRenderParams_WalksNestedValues(t *testing.T) {
	ctx := templateContext()
	params := map[string]interface{}{
		"file": "{{ .HomeDir }}/env",
		"vars": []interface{}{
			map[string]interface{}{"key": "LC_CTYPE", "value": "{{ .Vars.locale }}"},
		},
		"count": 3,
	}

	require.NoError(t, RenderParams(params, ctx))
	require.Equal(t, "/home/worker/env", params["file"])

	entry := params["vars"].([]interface{})[0].(map[string]interface{})
	require.Equal(t, "de_DE.UTF-8", entry["value"])
	require.Equal(t, 3, params["count"])
}

func TestGenerateDiff(t *testing.T) {
	diff := GenerateDiff("vm.swappiness = 60\n", "vm.swappiness = 10\n")
	require.Contains(t, diff, "- vm.swappiness = 60")
	require.Contains(t, diff, "+ vm.swappiness = 10")
}

package core

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func conditionContext() *SystemContext {
	ctx := NewSystemContext(true, NewMockRunner(), NewDefaultLogger(os.Stderr, LevelError))
	ctx.OS = "linux"
	ctx.Distro = "linuxmint"
	ctx.Version = "22"
	ctx.Vars = map[string]string{"profile": "desktop"}
	return ctx
}

func TestEvaluateCondition(t *testing.T) {
	tests := []struct {
		condition string
		want      bool
	}{
		{`Distro == "linuxmint"`, true},
		{`Distro == "arch"`, false},
		{`Distro in ["ubuntu", "linuxmint"]`, true},
		{`OS == "linux" and Version == "22"`, true},
		{`Vars.profile == "desktop"`, true},
		{`Vars.profile != "server"`, true},
	}
	ctx := conditionContext()
	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			got, err := EvaluateCondition(tt.condition, ctx)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateCondition_Errors(t *testing.T) {
	ctx := conditionContext()

	_, err := EvaluateCondition(`Distro ==`, ctx)
	require.ErrorContains(t, err, "invalid condition")

	_, err = EvaluateCondition(`Distro`, ctx)
	require.Error(t, err, "non-boolean expression is rejected")
}

package engine

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/mintup/mintup/internal/adapters/pkg"
	"github.com/mintup/mintup/internal/core"
)

func testContext(runner *core.MockRunner) *core.SystemContext {
	ctx := core.NewSystemContext(false, runner, core.NewDefaultLogger(os.Stderr, core.LevelError))
	ctx.Distro = "linuxmint"
	return ctx
}

func packageItem(name, state string) core.ConfigItem {
	return core.ConfigItem{
		Type:   "package",
		Name:   name,
		State:  state,
		Params: map[string]interface{}{"state": state},
	}
}

func TestRun_SecondPassIsSatisfied(t *testing.T) {
	runner := core.NewMockRunner()
	runner.On("dpkg -s tmux", "", errors.New("not installed"))
	runner.On("apt-get install -y tmux", "", nil)

	report := New(testContext(runner)).Run([]core.ConfigItem{packageItem("tmux", "present")})
	require.Equal(t, 1, report.Count(core.OutcomeChanged))
	require.True(t, runner.AssertCalled("apt-get install -y tmux"))

	// Same descriptor against a system that now has the package.
	runner = core.NewMockRunner()
	runner.On("dpkg -s tmux", "Status: install ok installed", nil)

	report = New(testContext(runner)).Run([]core.ConfigItem{packageItem("tmux", "present")})
	require.Equal(t, 1, report.Count(core.OutcomeSatisfied))
	require.False(t, runner.AssertCalled("install"))
	require.NoError(t, report.Err())
}

func TestRun_ContinuesAfterFailure(t *testing.T) {
	runner := core.NewMockRunner()
	runner.On("dpkg -s broken", "", errors.New("not installed"))
	runner.On("apt-get install -y broken", "E: unable to locate", errors.New("exit status 100"))
	runner.On("dpkg -s tmux", "", errors.New("not installed"))
	runner.On("apt-get install -y tmux", "", nil)

	report := New(testContext(runner)).Run([]core.ConfigItem{
		packageItem("broken", "present"),
		packageItem("tmux", "present"),
	})

	require.Equal(t, 1, report.Count(core.OutcomeFailed))
	require.Equal(t, 1, report.Count(core.OutcomeChanged))
	require.True(t, runner.AssertCalled("apt-get install -y tmux"), "run continues past the failure")
	require.ErrorContains(t, report.Err(), "broken")
}

func TestRun_ConditionSkips(t *testing.T) {
	runner := core.NewMockRunner()

	item := packageItem("pacman-mirrorlist", "present")
	item.When = `Distro == "arch"`

	report := New(testContext(runner)).Run([]core.ConfigItem{item})
	require.Equal(t, 1, report.Count(core.OutcomeSkipped))
	require.Empty(t, runner.Calls)
}

func TestRun_UnknownTypeFails(t *testing.T) {
	report := New(testContext(core.NewMockRunner())).Run([]core.ConfigItem{{
		Type: "registry_key", Name: "x", Params: map[string]interface{}{},
	}})
	require.Equal(t, 1, report.Count(core.OutcomeFailed))
	require.ErrorContains(t, report.Err(), "unknown resource type")
}

func TestRun_RendersTemplatedParams(t *testing.T) {
	runner := core.NewMockRunner()
	runner.On("dpkg -s aspell-de", "installed", nil)

	ctx := testContext(runner)
	ctx.Vars["lang"] = "de"

	item := packageItem("aspell-{{ .Vars.lang }}", "present")
	report := New(ctx).Run([]core.ConfigItem{item})

	require.Equal(t, 1, report.Count(core.OutcomeSatisfied))
	require.True(t, runner.AssertCalled("dpkg -s aspell-de"))
}

func TestPlan_ReportsPendingWithoutApplying(t *testing.T) {
	runner := core.NewMockRunner()
	runner.On("dpkg -s tmux", "", errors.New("not installed"))
	runner.On("dpkg -s git", "installed", nil)

	report := New(testContext(runner)).Plan([]core.ConfigItem{
		packageItem("tmux", "present"),
		packageItem("git", "present"),
	})

	require.Equal(t, 1, report.Count(core.OutcomeChanged))
	require.Equal(t, 1, report.Count(core.OutcomeSatisfied))
	require.False(t, runner.AssertCalled("install"))
}

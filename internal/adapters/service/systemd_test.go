package service

import (
	"errors"
	"os"
	"testing"

	"github.com/mintup/mintup/internal/core"
)

func newTestContext(runner *core.MockRunner) *core.SystemContext {
	return core.NewSystemContext(false, runner, core.NewDefaultLogger(os.Stderr, core.LevelError))
}

func TestSystemdService_Check(t *testing.T) {
	tests := []struct {
		name        string
		activeErr   error
		enabledOut  string
		needsAction bool
	}{
		{
			name:        "active and enabled -> satisfied",
			activeErr:   nil,
			enabledOut:  "enabled\n",
			needsAction: false,
		},
		{
			name:        "inactive -> action",
			activeErr:   errors.New("exit status 3"),
			enabledOut:  "enabled\n",
			needsAction: true,
		},
		{
			name:        "active but disabled -> action",
			activeErr:   nil,
			enabledOut:  "disabled\n",
			needsAction: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := core.NewMockRunner()
			runner.On("systemctl is-active ssh", "", tt.activeErr)
			runner.On("systemctl is-enabled ssh", tt.enabledOut, nil)

			res, _ := NewSystemdService("ssh", nil, nil)
			needsAction, err := res.Check(newTestContext(runner))
			if err != nil {
				t.Fatalf("Check: %v", err)
			}
			if needsAction != tt.needsAction {
				t.Errorf("Check() = %v, want %v", needsAction, tt.needsAction)
			}
		})
	}
}

func TestSystemdService_Activate(t *testing.T) {
	runner := core.NewMockRunner()
	runner.On("systemctl is-active haveged", "", errors.New("inactive"))
	runner.On("systemctl is-enabled haveged", "disabled\n", nil)
	runner.On("systemctl enable --now haveged", "", nil)
	runner.On("systemctl restart haveged", "", nil)
	runner.On("systemctl --no-pager status haveged -n 0", "active (running)", nil)

	res, _ := NewSystemdService("haveged", nil, nil)
	result, err := res.Apply(newTestContext(runner))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !result.Changed {
		t.Error("expected Changed=true")
	}
	for _, want := range []string{"enable --now haveged", "restart haveged", "status haveged"} {
		if !runner.AssertCalled(want) {
			t.Errorf("missing command %q, calls: %v", want, runner.Calls)
		}
	}
}

func TestSystemdService_AlreadyActive(t *testing.T) {
	runner := core.NewMockRunner()
	runner.On("systemctl is-active ssh", "active\n", nil)
	runner.On("systemctl is-enabled ssh", "enabled\n", nil)

	res, _ := NewSystemdService("ssh", nil, nil)
	result, err := res.Apply(newTestContext(runner))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.Changed {
		t.Error("expected satisfied outcome")
	}
	if runner.AssertCalled("enable --now") || runner.AssertCalled("restart") {
		t.Errorf("no mutation expected, calls: %v", runner.Calls)
	}
}

func TestSystemdService_DegradedStatusIsNotFailure(t *testing.T) {
	runner := core.NewMockRunner()
	runner.On("systemctl is-active preload", "", errors.New("inactive"))
	runner.On("systemctl is-enabled preload", "disabled\n", nil)
	runner.On("systemctl enable --now preload", "", nil)
	runner.On("systemctl restart preload", "", nil)
	runner.On("systemctl --no-pager status preload -n 0", "", errors.New("exit status 3"))

	res, _ := NewSystemdService("preload", nil, nil)
	result, err := res.Apply(newTestContext(runner))
	if err != nil {
		t.Fatalf("degraded status must not be an Apply error: %v", err)
	}
	if !result.Changed {
		t.Error("expected Changed=true")
	}
}

func TestSystemdService_Disable(t *testing.T) {
	runner := core.NewMockRunner()
	runner.On("systemctl is-active bluetooth", "active\n", nil)
	runner.On("systemctl is-enabled bluetooth", "enabled\n", nil)
	runner.On("systemctl disable --now bluetooth", "", nil)

	res, _ := NewSystemdService("bluetooth", map[string]interface{}{
		"enabled": false,
		"running": false,
	}, nil)
	result, err := res.Apply(newTestContext(runner))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !result.Changed || !runner.AssertCalled("disable --now bluetooth") {
		t.Errorf("disable path not taken, calls: %v", runner.Calls)
	}
}

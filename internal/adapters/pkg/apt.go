package pkg

import (
	"fmt"

	"github.com/mintup/mintup/internal/core"
)

// TypeName is the registry key for the package resource.
const TypeName = "package"

func init() {
	core.RegisterResource(TypeName, NewAptPackage)
}

// AptPackage reconciles a single dpkg-managed package to present or
// absent. Queries go through dpkg directly; mutations go through the
// preferred frontend (nala when installed, apt-get otherwise).
type AptPackage struct {
	core.BaseResource
	State core.ResourceState
}

func NewAptPackage(name string, params map[string]interface{}, ctx *core.SystemContext) (core.Resource, error) {
	state, _ := params["state"].(string)
	if state == "" {
		state = core.StatePresent.String()
	}
	return &AptPackage{
		BaseResource: core.BaseResource{Name: name, Type: TypeName},
		State:        core.ResourceState(state),
	}, nil
}

func (r *AptPackage) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("package name is required")
	}
	if r.State != core.StatePresent && r.State != core.StateAbsent {
		return fmt.Errorf("package %s: unsupported state %q", r.Name, r.State)
	}
	return nil
}

// Check returns true when corrective action is needed.
func (r *AptPackage) Check(ctx *core.SystemContext) (bool, error) {
	// dpkg -s exits zero only for installed packages.
	_, err := ctx.Runner.Execute(ctx, "dpkg", "-s", r.Name)
	installed := err == nil

	if r.State == core.StateAbsent {
		return installed, nil
	}
	return !installed, nil
}

func (r *AptPackage) Apply(ctx *core.SystemContext) (core.Result, error) {
	needsAction, err := r.Check(ctx)
	if err != nil {
		return core.Failure(err, "package state query failed"), err
	}
	if !needsAction {
		return core.SuccessNoChange(fmt.Sprintf("package %s already %s", r.Name, r.State)), nil
	}

	if ctx.DryRun {
		return core.SuccessChange(fmt.Sprintf("[dry-run] would set package %s to %s", r.Name, r.State)), nil
	}

	frontend := Frontend(ctx.Runner)
	var args []string
	if r.State == core.StateAbsent {
		args = []string{"purge", "-y", r.Name}
	} else {
		args = []string{"install", "-y", r.Name}
	}

	out, err := ctx.Runner.Execute(ctx, frontend, args...)
	if err != nil {
		return core.Failure(err, fmt.Sprintf("%s %s failed: %s", frontend, args[0], out)), err
	}
	return core.SuccessChange(fmt.Sprintf("package %s is now %s", r.Name, r.State)), nil
}

// Frontend returns the preferred apt frontend binary.
func Frontend(runner core.Runner) string {
	if runner.LookPath("nala") {
		return "nala"
	}
	return "apt-get"
}

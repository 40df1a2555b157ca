package file

import (
	"fmt"

	"github.com/mintup/mintup/internal/core"
)

func init() {
	core.RegisterResource("sysctl", NewSysctlDropIn)
}

// SysctlDropIn manages one kernel parameter inside a drop-in file under
// /etc/sysctl.d and reloads the kernel parameter tables when the file
// changed. Lines use the canonical "key = value" form.
type SysctlDropIn struct {
	core.BaseResource
	File  string
	Key   string
	Value string
}

func NewSysctlDropIn(name string, params map[string]interface{}, ctx *core.SystemContext) (core.Resource, error) {
	path, _ := params["file"].(string)
	key, _ := params["key"].(string)
	if key == "" {
		key = name
	}
	value, _ := params["value"].(string)

	return &SysctlDropIn{
		BaseResource: core.BaseResource{Name: name, Type: "sysctl"},
		File:         path,
		Key:          key,
		Value:        value,
	}, nil
}

func (r *SysctlDropIn) Validate() error {
	if r.File == "" {
		return fmt.Errorf("sysctl %s: file is required", r.Name)
	}
	if r.Key == "" {
		return fmt.Errorf("sysctl %s: key is required", r.Name)
	}
	return nil
}

func (r *SysctlDropIn) Check(ctx *core.SystemContext) (bool, error) {
	content, err := readIfExists(r.File)
	if err != nil {
		return false, err
	}
	_, changed := rewriteLine(content, r.Key, r.Key+SepSysctl+r.Value)
	return changed, nil
}

func (r *SysctlDropIn) Diff(ctx *core.SystemContext) (string, error) {
	content, err := readIfExists(r.File)
	if err != nil {
		return "", err
	}
	after, changed := rewriteLine(content, r.Key, r.Key+SepSysctl+r.Value)
	if !changed {
		return "", nil
	}
	return core.GenerateDiff(content, after), nil
}

func (r *SysctlDropIn) Apply(ctx *core.SystemContext) (core.Result, error) {
	needsAction, err := r.Check(ctx)
	if err != nil {
		return core.Failure(err, "failed to read "+r.File), err
	}
	if !needsAction {
		return core.SuccessNoChange(fmt.Sprintf("%s already %s", r.Key, r.Value)), nil
	}
	if ctx.DryRun {
		return core.SuccessChange(fmt.Sprintf("[dry-run] would set %s = %s in %s", r.Key, r.Value, r.File)), nil
	}

	if _, err := SetLine(r.File, r.Key, r.Value, SepSysctl); err != nil {
		return core.Failure(err, "failed to update "+r.File), err
	}

	// Reload all drop-ins so the kernel picks the new value up now
	// instead of at next boot.
	if out, err := ctx.Runner.Execute(ctx, "sysctl", "--system"); err != nil {
		return core.Failure(err, "sysctl reload failed: "+out), err
	}
	return core.SuccessChange(fmt.Sprintf("set %s = %s", r.Key, r.Value)), nil
}

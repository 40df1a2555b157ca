package file

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mintup/mintup/internal/core"
)

func init() {
	core.RegisterResource("env_file", NewEnvFile)
}

// EnvFile merges a set of variables into an environment-style file
// (KEY=value). Existing unrelated keys are preserved; managed keys are
// overwritten. Output is the deterministic godotenv serialization, so
// repeated applies are stable.
type EnvFile struct {
	core.BaseResource
	Path string
	Vars map[string]string
}

func NewEnvFile(name string, params map[string]interface{}, ctx *core.SystemContext) (core.Resource, error) {
	path, _ := params["file"].(string)
	if path == "" {
		path = name
	}

	vars := map[string]string{}
	switch raw := params["vars"].(type) {
	case map[string]interface{}:
		for k, v := range raw {
			vars[k] = fmt.Sprintf("%v", v)
		}
	case []interface{}:
		for _, entry := range raw {
			if m, ok := entry.(map[string]interface{}); ok {
				key, _ := m["key"].(string)
				vars[key] = fmt.Sprintf("%v", m["value"])
			}
		}
	}

	return &EnvFile{
		BaseResource: core.BaseResource{Name: name, Type: "env_file"},
		Path:         path,
		Vars:         vars,
	}, nil
}

func (r *EnvFile) Validate() error {
	if r.Path == "" {
		return fmt.Errorf("env_file %s: file is required", r.Name)
	}
	if len(r.Vars) == 0 {
		return fmt.Errorf("env_file %s: at least one variable is required", r.Name)
	}
	for k := range r.Vars {
		if k == "" {
			return fmt.Errorf("env_file %s: empty variable name", r.Name)
		}
	}
	return nil
}

func (r *EnvFile) Check(ctx *core.SystemContext) (bool, error) {
	current, err := r.readCurrent()
	if err != nil {
		return false, err
	}
	for k, v := range r.Vars {
		if current[k] != v {
			return true, nil
		}
	}
	return false, nil
}

func (r *EnvFile) Apply(ctx *core.SystemContext) (core.Result, error) {
	needsAction, err := r.Check(ctx)
	if err != nil {
		return core.Failure(err, "failed to read "+r.Path), err
	}
	if !needsAction {
		return core.SuccessNoChange(fmt.Sprintf("%s already up to date", r.Path)), nil
	}
	if ctx.DryRun {
		return core.SuccessChange(fmt.Sprintf("[dry-run] would update %d variables in %s", len(r.Vars), r.Path)), nil
	}

	merged, err := r.readCurrent()
	if err != nil {
		return core.Failure(err, "failed to read "+r.Path), err
	}
	for k, v := range r.Vars {
		merged[k] = v
	}

	if err := godotenv.Write(merged, r.Path); err != nil {
		return core.Failure(err, "failed to write "+r.Path), err
	}
	return core.SuccessChange(fmt.Sprintf("updated %s", r.Path)), nil
}

func (r *EnvFile) readCurrent() (map[string]string, error) {
	if _, err := os.Stat(r.Path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	return godotenv.Read(r.Path)
}

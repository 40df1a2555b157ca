package journald

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/ini.v1"

	"github.com/mintup/mintup/internal/core"
)

const defaultConfigFile = "/etc/systemd/journald.conf"

// journald accepts sizes (100M), durations (5m) and a few keywords;
// everything else is rejected before touching the file.
var valuePattern = regexp.MustCompile(`(^[0-9]+[KMGTPsmhday]?$)|(^(persistent|auto|volatile|yes|no)$)`)

func init() {
	ini.PrettyFormat = false
	core.RegisterResource("journald", NewProperty)
}

// Property pins one key under the [Journal] section of journald.conf.
// The original file is backed up to .bak before the first modification.
type Property struct {
	core.BaseResource
	File  string
	Key   string
	Value string
}

func NewProperty(name string, params map[string]interface{}, ctx *core.SystemContext) (core.Resource, error) {
	file, _ := params["file"].(string)
	if file == "" {
		file = defaultConfigFile
	}
	key, _ := params["key"].(string)
	if key == "" {
		key = name
	}
	value, _ := params["value"].(string)

	return &Property{
		BaseResource: core.BaseResource{Name: name, Type: "journald"},
		File:         file,
		Key:          key,
		Value:        value,
	}, nil
}

func (r *Property) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("journald property key is required")
	}
	if !valuePattern.MatchString(r.Value) {
		return fmt.Errorf("journald %s: invalid value %q", r.Key, r.Value)
	}
	return nil
}

func (r *Property) Check(ctx *core.SystemContext) (bool, error) {
	cfg, err := ini.LooseLoad(r.File)
	if err != nil {
		return false, fmt.Errorf("parsing %s: %w", r.File, err)
	}
	return cfg.Section("Journal").Key(r.Key).String() != r.Value, nil
}

func (r *Property) Apply(ctx *core.SystemContext) (core.Result, error) {
	needsAction, err := r.Check(ctx)
	if err != nil {
		return core.Failure(err, "failed to read "+r.File), err
	}
	if !needsAction {
		return core.SuccessNoChange(fmt.Sprintf("%s already %s", r.Key, r.Value)), nil
	}
	if ctx.DryRun {
		return core.SuccessChange(fmt.Sprintf("[dry-run] would set [Journal] %s=%s", r.Key, r.Value)), nil
	}

	if err := r.backupOnce(ctx); err != nil {
		return core.Failure(err, "backup failed"), err
	}

	cfg, err := ini.LooseLoad(r.File)
	if err != nil {
		return core.Failure(err, "failed to parse "+r.File), err
	}
	cfg.Section("Journal").Key(r.Key).SetValue(r.Value)
	if err := cfg.SaveTo(r.File); err != nil {
		return core.Failure(err, "failed to write "+r.File), err
	}
	return core.SuccessChange(fmt.Sprintf("set [Journal] %s=%s", r.Key, r.Value)), nil
}

func (r *Property) backupOnce(ctx *core.SystemContext) error {
	backup := r.File + ".bak"
	if _, err := os.Stat(backup); err == nil {
		return nil
	}
	content, err := os.ReadFile(r.File)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(backup, content, 0o644); err != nil {
		return err
	}
	ctx.Logger.Debug("backup created: " + backup)
	return nil
}

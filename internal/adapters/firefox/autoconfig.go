package firefox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mintup/mintup/internal/core"
)

func init() {
	core.RegisterResource("firefox_autoconfig", NewAutoconfig)
}

// Pref is a single locked Firefox preference.
type Pref struct {
	Key   string
	Value interface{}
}

// Autoconfig manages the system-wide Firefox autoconfig pair: the
// bootstrap file under defaults/pref pointing at the cfg file, and the
// cfg file locking every declared preference with lockPref.
type Autoconfig struct {
	core.BaseResource
	AutoconfigPath string
	ConfigPath     string
	Prefs          []Pref
}

func NewAutoconfig(name string, params map[string]interface{}, ctx *core.SystemContext) (core.Resource, error) {
	autoconfig, _ := params["autoconfig"].(string)
	config, _ := params["config"].(string)

	var prefs []Pref
	if raw, ok := params["prefs"].([]interface{}); ok {
		for _, entry := range raw {
			if m, ok := entry.(map[string]interface{}); ok {
				key, _ := m["key"].(string)
				prefs = append(prefs, Pref{Key: key, Value: m["value"]})
			}
		}
	}

	return &Autoconfig{
		BaseResource:   core.BaseResource{Name: name, Type: "firefox_autoconfig"},
		AutoconfigPath: autoconfig,
		ConfigPath:     config,
		Prefs:          prefs,
	}, nil
}

func (r *Autoconfig) Validate() error {
	if r.AutoconfigPath == "" || r.ConfigPath == "" {
		return fmt.Errorf("firefox_autoconfig %s: autoconfig and config paths are required", r.Name)
	}
	for _, p := range r.Prefs {
		if p.Key == "" {
			return fmt.Errorf("firefox_autoconfig %s: pref with empty key", r.Name)
		}
	}
	return nil
}

func (r *Autoconfig) Check(ctx *core.SystemContext) (bool, error) {
	current, err := os.ReadFile(r.ConfigPath)
	if err != nil {
		return true, nil
	}
	bootstrap, err := os.ReadFile(r.AutoconfigPath)
	if err != nil {
		return true, nil
	}
	return string(current) != r.renderConfig() || string(bootstrap) != r.renderBootstrap(), nil
}

func (r *Autoconfig) Diff(ctx *core.SystemContext) (string, error) {
	current, _ := os.ReadFile(r.ConfigPath)
	if string(current) == r.renderConfig() {
		return "", nil
	}
	return core.GenerateDiff(string(current), r.renderConfig()), nil
}

func (r *Autoconfig) Apply(ctx *core.SystemContext) (core.Result, error) {
	needsAction, err := r.Check(ctx)
	if err != nil {
		return core.Failure(err, "failed to read firefox config"), err
	}
	if !needsAction {
		return core.SuccessNoChange("firefox autoconfig already in place"), nil
	}
	if ctx.DryRun {
		return core.SuccessChange(fmt.Sprintf("[dry-run] would lock %d firefox prefs", len(r.Prefs))), nil
	}

	for path, content := range map[string]string{
		r.AutoconfigPath: r.renderBootstrap(),
		r.ConfigPath:     r.renderConfig(),
	} {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return core.Failure(err, "cannot create "+filepath.Dir(path)), err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return core.Failure(err, "cannot write "+path), err
		}
	}
	return core.SuccessChange(fmt.Sprintf("locked %d firefox prefs", len(r.Prefs))), nil
}

// renderBootstrap points Firefox at the cfg file. obscure_value 0 keeps
// the cfg plain text.
func (r *Autoconfig) renderBootstrap() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pref(\"general.config.filename\", %q);\n", filepath.Base(r.ConfigPath))
	b.WriteString("pref(\"general.config.obscure_value\", 0);\n")
	return b.String()
}

func (r *Autoconfig) renderConfig() string {
	var b strings.Builder
	b.WriteString("// Firefox configuration file, managed by mintup\n")
	for _, p := range r.Prefs {
		fmt.Fprintf(&b, "lockPref(%q, %s);\n", p.Key, formatPrefValue(p.Value))
	}
	return b.String()
}

// formatPrefValue renders a pref value as a JS literal. Firefox accepts
// booleans, integers and strings.
func formatPrefValue(v interface{}) string {
	switch val := v.(type) {
	case bool:
		return fmt.Sprintf("%t", val)
	case int, int64, uint64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%d", int64(val))
	case string:
		return fmt.Sprintf("%q", val)
	default:
		return fmt.Sprintf("%q", fmt.Sprintf("%v", val))
	}
}

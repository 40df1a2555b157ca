package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mintup/mintup/internal/core"
)

// Separator styles for managed lines.
const (
	SepSysctl = " = " // kernel parameter drop-ins
	SepEnv    = "="   // environment style files
)

func init() {
	core.RegisterResource("line_in_file", NewLineInFile)
}

// LineInFile pins a single key to a value inside a config file. Every
// line carrying the key (including commented-out variants) is removed
// before the desired line is appended, so the end state always holds
// exactly one line per key.
type LineInFile struct {
	core.BaseResource
	Path      string
	Key       string
	Value     string
	Separator string
}

func NewLineInFile(name string, params map[string]interface{}, ctx *core.SystemContext) (core.Resource, error) {
	path, _ := params["path"].(string)
	if path == "" {
		path = name
	}
	key, _ := params["key"].(string)
	value, _ := params["value"].(string)
	sep, _ := params["separator"].(string)
	if sep == "" {
		sep = SepSysctl
	}

	return &LineInFile{
		BaseResource: core.BaseResource{Name: name, Type: "line_in_file"},
		Path:         path,
		Key:          key,
		Value:        value,
		Separator:    sep,
	}, nil
}

func (r *LineInFile) Validate() error {
	if r.Path == "" {
		return fmt.Errorf("line_in_file %s: path is required", r.Name)
	}
	if r.Key == "" {
		return fmt.Errorf("line_in_file %s: key is required", r.Name)
	}
	return nil
}

func (r *LineInFile) Check(ctx *core.SystemContext) (bool, error) {
	content, err := readIfExists(r.Path)
	if err != nil {
		return false, err
	}
	_, changed := rewriteLine(content, r.Key, r.Key+r.Separator+r.Value)
	return changed, nil
}

func (r *LineInFile) Diff(ctx *core.SystemContext) (string, error) {
	content, err := readIfExists(r.Path)
	if err != nil {
		return "", err
	}
	after, changed := rewriteLine(content, r.Key, r.Key+r.Separator+r.Value)
	if !changed {
		return "", nil
	}
	return core.GenerateDiff(content, after), nil
}

func (r *LineInFile) Apply(ctx *core.SystemContext) (core.Result, error) {
	needsAction, err := r.Check(ctx)
	if err != nil {
		return core.Failure(err, "failed to read "+r.Path), err
	}
	if !needsAction {
		return core.SuccessNoChange(fmt.Sprintf("%s already set in %s", r.Key, r.Path)), nil
	}
	if ctx.DryRun {
		return core.SuccessChange(fmt.Sprintf("[dry-run] would set %s in %s", r.Key, r.Path)), nil
	}

	if _, err := SetLine(r.Path, r.Key, r.Value, r.Separator); err != nil {
		return core.Failure(err, "failed to update "+r.Path), err
	}
	return core.SuccessChange(fmt.Sprintf("set %s%s%s in %s", r.Key, r.Separator, r.Value, r.Path)), nil
}

// SetLine removes every line matching key from the file and appends the
// desired "key<sep>value" line. The file is created when missing.
// Repeated calls converge on the same single line.
func SetLine(path, key, value, sep string) (bool, error) {
	content, err := readIfExists(path)
	if err != nil {
		return false, err
	}

	after, changed := rewriteLine(content, key, key+sep+value)
	if !changed {
		return false, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, err
		}
	}
	if err := os.WriteFile(path, []byte(after), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// rewriteLine computes the content after the remove+append pass and
// whether it differs from the input.
func rewriteLine(content, key, desired string) (string, bool) {
	var lines []string
	if content != "" {
		lines = strings.Split(strings.TrimRight(content, "\n"), "\n")
	}

	kept := make([]string, 0, len(lines)+1)
	matches, exact := 0, 0
	for _, line := range lines {
		if keyMatches(line, key) {
			matches++
			if line == desired {
				exact++
			}
			continue
		}
		kept = append(kept, line)
	}

	if matches == 1 && exact == 1 {
		return content, false
	}

	kept = append(kept, desired)
	return strings.Join(kept, "\n") + "\n", true
}

// keyMatches reports whether a line assigns the key, commented out or
// not. The key comparison is exact and case-sensitive.
func keyMatches(line, key string) bool {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
	if !strings.HasPrefix(trimmed, key) {
		return false
	}
	rest := trimmed[len(key):]
	if rest == "" {
		return true
	}
	switch rest[0] {
	case '=', ' ', '\t':
		return true
	}
	return false
}

func readIfExists(path string) (string, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(content), nil
}

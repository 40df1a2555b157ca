package core

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// EvaluateCondition evaluates a `when:` expression against the system
// facts. The expression must yield a boolean, e.g.
// `Distro == "linuxmint" or Distro == "ubuntu"`.
func EvaluateCondition(condition string, ctx *SystemContext) (bool, error) {
	env := map[string]interface{}{
		"OS":       ctx.OS,
		"Distro":   ctx.Distro,
		"Version":  ctx.Version,
		"Hostname": ctx.Hostname,
		"User":     ctx.User,
		"Vars":     ctx.Vars,
	}

	program, err := expr.Compile(condition, expr.Env(env), expr.AsBool())
	if err != nil {
		return false, fmt.Errorf("invalid condition %q: %w", condition, err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("condition %q: %w", condition, err)
	}

	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q did not evaluate to a boolean", condition)
	}
	return result, nil
}

package pkg

import (
	"fmt"
	"strings"

	"github.com/mintup/mintup/internal/core"
)

// ListInstalled returns the names of every installed package, one
// dpkg-query call instead of a per-package probe.
func ListInstalled(ctx *core.SystemContext) ([]string, error) {
	out, err := ctx.Runner.Execute(ctx, "dpkg-query", "-W", "-f", "${binary:Package}\n")
	if err != nil {
		return nil, fmt.Errorf("dpkg-query failed: %s: %w", out, err)
	}

	var names []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

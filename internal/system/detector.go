package system

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mintup/mintup/internal/core"
)

const osReleasePath = "/etc/os-release"

// Detect fills a SystemContext with the facts of the local machine.
func Detect(dryRun bool, runner core.Runner, logger core.Logger) *core.SystemContext {
	ctx := core.NewSystemContext(dryRun, runner, logger)
	ctx.OS = runtime.GOOS

	f, err := os.Open(osReleasePath)
	if err != nil {
		return ctx
	}
	defer f.Close()

	info := ParseOSRelease(f)
	ctx.Distro = info["ID"]
	ctx.Version = info["VERSION_ID"]

	// Mint and friends report their Debian/Ubuntu ancestry in ID_LIKE;
	// package and repository factories key off this.
	if ctx.Distro == "" {
		ctx.Distro = "unknown"
	}
	return ctx
}

// ParseOSRelease reads os-release formatted key=value pairs.
func ParseOSRelease(r io.Reader) map[string]string {
	info := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if parts := strings.SplitN(line, "=", 2); len(parts) == 2 {
			info[parts[0]] = strings.Trim(parts[1], "\"")
		}
	}
	return info
}

// IsDebianFamily reports whether the detected distro uses apt.
func IsDebianFamily(ctx *core.SystemContext) bool {
	switch ctx.Distro {
	case "debian", "ubuntu", "linuxmint", "pop", "kali", "elementary":
		return true
	}
	return false
}

package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mintup/mintup/internal/adapters/pkg"
	"github.com/mintup/mintup/internal/core"
)

func init() {
	core.RegisterResource("apt_repository", NewAptRepository)
}

// FetchKey downloads an ASCII-armored signing key. Package-level so
// tests can stub the network.
var FetchKey = func(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("key fetch returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// AptRepository installs a third-party apt repository: signing key
// dearmored into a binary keyring (root:root, 0644), conflicting legacy
// key/list files removed by glob, a fresh sources list entry written and
// the package indices refreshed.
type AptRepository struct {
	core.BaseResource
	KeyURL    string
	Keyring   string
	ListFile  string
	Entry     string
	Conflicts []string
}

func NewAptRepository(name string, params map[string]interface{}, ctx *core.SystemContext) (core.Resource, error) {
	keyURL, _ := params["key_url"].(string)
	keyring, _ := params["keyring"].(string)
	listFile, _ := params["list_file"].(string)
	entry, _ := params["entry"].(string)

	var conflicts []string
	if raw, ok := params["conflicts"].([]interface{}); ok {
		for _, c := range raw {
			if s, ok := c.(string); ok {
				conflicts = append(conflicts, s)
			}
		}
	}

	return &AptRepository{
		BaseResource: core.BaseResource{Name: name, Type: "apt_repository"},
		KeyURL:       keyURL,
		Keyring:      keyring,
		ListFile:     listFile,
		Entry:        entry,
		Conflicts:    conflicts,
	}, nil
}

func (r *AptRepository) Validate() error {
	if r.KeyURL == "" {
		return fmt.Errorf("repository %s: key_url is required", r.Name)
	}
	if r.Keyring == "" || r.ListFile == "" || r.Entry == "" {
		return fmt.Errorf("repository %s: keyring, list_file and entry are required", r.Name)
	}
	return nil
}

func (r *AptRepository) Check(ctx *core.SystemContext) (bool, error) {
	if _, err := os.Stat(r.Keyring); err != nil {
		return true, nil
	}
	content, err := os.ReadFile(r.ListFile)
	if err != nil {
		return true, nil
	}
	return string(content) != r.Entry+"\n", nil
}

func (r *AptRepository) Apply(ctx *core.SystemContext) (core.Result, error) {
	needsAction, err := r.Check(ctx)
	if err != nil {
		return core.Failure(err, "repository state query failed"), err
	}
	if !needsAction {
		return core.SuccessNoChange(fmt.Sprintf("repository %s already configured", r.Name)), nil
	}
	if ctx.DryRun {
		return core.SuccessChange(fmt.Sprintf("[dry-run] would install repository %s", r.Name)), nil
	}

	// Stale Microsoft-era keys and list files shadow the fresh keyring,
	// purge them before writing anything.
	for _, pattern := range r.Conflicts {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			ctx.Logger.Warn(fmt.Sprintf("bad conflict glob %q: %v", pattern, err))
			continue
		}
		for _, match := range matches {
			if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
				ctx.Logger.Warn(fmt.Sprintf("could not remove %s: %v", match, err))
				continue
			}
			ctx.Logger.Debug("removed conflicting file " + match)
		}
	}

	if err := r.installKeyring(ctx); err != nil {
		return core.Failure(err, "keyring install failed"), err
	}

	if err := os.MkdirAll(filepath.Dir(r.ListFile), 0o755); err != nil {
		return core.Failure(err, "cannot create sources directory"), err
	}
	if err := os.WriteFile(r.ListFile, []byte(r.Entry+"\n"), 0o644); err != nil {
		return core.Failure(err, "cannot write "+r.ListFile), err
	}

	if out, err := ctx.Runner.Execute(ctx, pkg.Frontend(ctx.Runner), "update"); err != nil {
		return core.Failure(err, "index refresh failed: "+out), err
	}
	return core.SuccessChange(fmt.Sprintf("repository %s installed", r.Name)), nil
}

func (r *AptRepository) installKeyring(ctx *core.SystemContext) error {
	armored, err := FetchKey(ctx, r.KeyURL)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", r.KeyURL, err)
	}

	binary, err := ctx.Runner.ExecuteInput(ctx, armored, "gpg", "--dearmor")
	if err != nil {
		return fmt.Errorf("gpg --dearmor: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.Keyring), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(r.Keyring, []byte(binary), 0o644); err != nil {
		return err
	}
	// Ownership can only be fixed when running as root; apt only needs
	// the keyring world-readable.
	if os.Geteuid() == 0 {
		if err := os.Chown(r.Keyring, 0, 0); err != nil {
			return err
		}
	}
	return nil
}

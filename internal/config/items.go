package config

import (
	"github.com/mintup/mintup/internal/core"
)

// The builders below compile manifest sections into the flat descriptor
// list the engine consumes. Group order defines apply order.

// InstallItems returns one present-package item per group member.
func (m *Manifest) InstallItems() []core.ConfigItem {
	return packageItems(m.Packages.Install, core.StatePresent)
}

// RemoveItems returns one absent-package item per group member.
func (m *Manifest) RemoveItems() []core.ConfigItem {
	return packageItems(m.Packages.Remove, core.StateAbsent)
}

func packageItems(groups []PackageGroup, state core.ResourceState) []core.ConfigItem {
	var items []core.ConfigItem
	for _, group := range groups {
		for _, member := range group.Members {
			items = append(items, core.ConfigItem{
				Type:  "package",
				Name:  member,
				State: state.String(),
				When:  group.When,
				Params: map[string]interface{}{
					"state": state.String(),
					"group": group.Name,
				},
			})
		}
	}
	return items
}

// RepositoryItems returns the repository descriptors followed by the
// packages each repository provides.
func (m *Manifest) RepositoryItems() []core.ConfigItem {
	var items []core.ConfigItem
	for _, repo := range m.Repositories {
		conflicts := make([]interface{}, 0, len(repo.Conflicts))
		for _, c := range repo.Conflicts {
			conflicts = append(conflicts, c)
		}
		items = append(items, core.ConfigItem{
			Type:  "apt_repository",
			Name:  repo.Name,
			State: core.StatePresent.String(),
			When:  repo.When,
			Params: map[string]interface{}{
				"key_url":   repo.KeyURL,
				"keyring":   repo.Keyring,
				"list_file": repo.ListFile,
				"entry":     repo.Entry,
				"conflicts": conflicts,
			},
		})
		for _, pkg := range repo.Packages {
			items = append(items, core.ConfigItem{
				Type:   "package",
				Name:   pkg,
				State:  core.StatePresent.String(),
				When:   repo.When,
				Params: map[string]interface{}{"state": core.StatePresent.String()},
			})
		}
	}
	return items
}

// SystemItems returns the kernel, journald, environment and service
// descriptors in that order, mirroring the provisioning sequence.
func (m *Manifest) SystemItems() []core.ConfigItem {
	var items []core.ConfigItem

	for _, param := range m.Sysctl.Params {
		items = append(items, core.ConfigItem{
			Type:  "sysctl",
			Name:  param.Key,
			State: core.StatePresent.String(),
			Params: map[string]interface{}{
				"file":  m.Sysctl.File,
				"key":   param.Key,
				"value": param.Value,
			},
		})
	}

	for _, prop := range m.Journald.Properties {
		params := map[string]interface{}{
			"key":   prop.Key,
			"value": prop.Value,
		}
		if m.Journald.File != "" {
			params["file"] = m.Journald.File
		}
		items = append(items, core.ConfigItem{
			Type:   "journald",
			Name:   prop.Key,
			State:  core.StatePresent.String(),
			Params: params,
		})
	}

	if len(m.Environment.Vars) > 0 {
		vars := make([]interface{}, 0, len(m.Environment.Vars))
		for _, v := range m.Environment.Vars {
			vars = append(vars, map[string]interface{}{"key": v.Key, "value": v.Value})
		}
		items = append(items, core.ConfigItem{
			Type:  "env_file",
			Name:  m.Environment.File,
			State: core.StatePresent.String(),
			Params: map[string]interface{}{
				"file": m.Environment.File,
				"vars": vars,
			},
		})
	}

	for _, svc := range m.Services {
		params := map[string]interface{}{}
		if svc.Enabled != nil {
			params["enabled"] = *svc.Enabled
		}
		if svc.Running != nil {
			params["running"] = *svc.Running
		}
		items = append(items, core.ConfigItem{
			Type:   "service",
			Name:   svc.Name,
			State:  core.StatePresent.String(),
			Params: params,
		})
	}

	return items
}

// FirefoxItems returns the autoconfig descriptor, empty when no prefs
// are declared.
func (m *Manifest) FirefoxItems() []core.ConfigItem {
	if len(m.Firefox.Prefs) == 0 {
		return nil
	}
	prefs := make([]interface{}, 0, len(m.Firefox.Prefs))
	for _, p := range m.Firefox.Prefs {
		prefs = append(prefs, map[string]interface{}{"key": p.Key, "value": p.Value})
	}
	return []core.ConfigItem{{
		Type:  "firefox_autoconfig",
		Name:  "firefox",
		State: core.StatePresent.String(),
		Params: map[string]interface{}{
			"autoconfig": m.Firefox.Autoconfig,
			"config":     m.Firefox.Config,
			"prefs":      prefs,
		},
	}}
}

// AllItems is the complete descriptor list in provisioning order:
// repositories first (they change what is installable), then package
// reconciliation, then system tuning and Firefox policies.
func (m *Manifest) AllItems() []core.ConfigItem {
	var items []core.ConfigItem
	items = append(items, m.RepositoryItems()...)
	items = append(items, m.RemoveItems()...)
	items = append(items, m.InstallItems()...)
	items = append(items, m.SystemItems()...)
	items = append(items, m.FirefoxItems()...)
	return items
}
